package util

import (
	"log"
	"strings"
	"time"
)

// RetryOnLock retries the given function if it fails with a database lock
// error, backing off 100ms, 200ms, 400ms. Non-lock errors return immediately.
func RetryOnLock(operation func() error) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var err error
	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if strings.Contains(err.Error(), "database is locked") {
			delay := baseDelay * time.Duration(1<<i)
			log.Printf("Database locked, retrying in %v...", delay)
			time.Sleep(delay)
			continue
		}

		return err
	}

	return err
}
