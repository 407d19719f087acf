// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxRecordSize caps a single POST/PATCH body on the collection API.
	MaxRecordSize = 64 << 10 // 64 KB

	// MaxLoginBody caps credential check and registration bodies.
	MaxLoginBody = 4 << 10 // 4 KB

	// MaxFormSize caps portal form submissions. A report carries the list
	// of present students, so it gets more room than a login.
	MaxFormSize = 256 << 10 // 256 KB
)
