package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("NURSERY_TEST_MODE") == "" {
			_ = os.Setenv("NURSERY_TEST_MODE", "1")
		}
	})
}
