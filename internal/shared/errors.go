package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Deliberately
	// undifferentiated: callers must not learn which factor failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountLocked indicates login was attempted during an active
	// lockout window.
	ErrAccountLocked = errors.New("account locked")
	// ErrPasswordMismatch indicates the current-password check failed.
	ErrPasswordMismatch = errors.New("current password is incorrect")
	// ErrPermissionDenied indicates the caller lacks a required permission.
	ErrPermissionDenied = errors.New("insufficient permissions")
	// ErrSelfDelete indicates an attempt to delete the caller's own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrUnauthenticated indicates there is no valid session.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrDuplicate indicates a uniqueness conflict in the directory.
	ErrDuplicate = errors.New("duplicate entry")
)
