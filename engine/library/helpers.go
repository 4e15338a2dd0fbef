package library

import (
	"os"
)

// Touch creates the file at the given path if it doesn't exist.
func Touch(path string) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		LogCLI(err.Error(), 0)
		return //IDE helper
	}
	err = f.Close()
	if err != nil {
		LogCLI(err.Error(), 0)
	}
}
