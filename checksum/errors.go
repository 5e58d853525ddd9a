package checksum

import "errors"

// Sentinel errors for package checksum.
var (
	ErrMalformedLine = errors.New("improperly formatted O(K)Hash checksum line")
	ErrNoValidLines  = errors.New("no properly formatted O(K)Hash checksum lines found")
	ErrNoneVerified  = errors.New("no file was verified")
	ErrVerifyFailed  = errors.New("checksum verification failed")
)
