package document

// DocumentError is a custom error type for document store errors
type DocumentError string

// Error implements the error interface
func (e DocumentError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrFetchFailed      DocumentError = "remote document operation failed"
	ErrNoCacheAvailable DocumentError = "remote fetch failed and no cached document exists"
	ErrNilConfig        DocumentError = "config cannot be nil"
	ErrNilBinRepo       DocumentError = "bin repository cannot be nil"
	ErrNilCacheRepo     DocumentError = "cache repository cannot be nil"
	ErrNilClock         DocumentError = "clock cannot be nil"
)
