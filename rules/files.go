package rules

// FileRef is the minimal view of a supporting document the engine needs.
type FileRef struct {
	Name     string
	Size     int64
	MimeType string
}

// FileRejection explains why a single file was excluded. The filter drops
// silently for submission purposes; rejections are returned so callers may
// surface per-file diagnostics.
type FileRejection struct {
	Name   string
	Reason string
}

// FileLimits bounds the accepted supporting documents.
type FileLimits struct {
	MaxFiles    int
	MaxFileSize int64 // bytes, per file
	Allowed     map[string]bool
}

// DefaultFileLimits: up to 10 files of 10MB each from the document allowlist.
func DefaultFileLimits() FileLimits {
	return FileLimits{
		MaxFiles:    10,
		MaxFileSize: 10 * 1024 * 1024,
		Allowed: map[string]bool{
			"application/pdf": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
			"image/jpeg": true,
			"image/png":  true,
			"image/gif":  true,
		},
	}
}

// Filter returns the accepted files in input order, and a rejection per
// excluded file. Files beyond MaxFiles, over MaxFileSize or outside the type
// allowlist are excluded.
func (l FileLimits) Filter(files []FileRef) ([]FileRef, []FileRejection) {
	var accepted []FileRef
	var rejected []FileRejection

	for _, f := range files {
		switch {
		case l.MaxFiles > 0 && len(accepted) >= l.MaxFiles:
			rejected = append(rejected, FileRejection{Name: f.Name, Reason: "file count limit reached"})
		case l.MaxFileSize > 0 && f.Size > l.MaxFileSize:
			rejected = append(rejected, FileRejection{Name: f.Name, Reason: "file exceeds size limit"})
		case len(l.Allowed) > 0 && !l.Allowed[f.MimeType]:
			rejected = append(rejected, FileRejection{Name: f.Name, Reason: "file type not allowed"})
		default:
			accepted = append(accepted, f)
		}
	}
	return accepted, rejected
}

// Accepts reports whether a single file passes the size and type checks.
func (l FileLimits) Accepts(f FileRef) bool {
	if l.MaxFileSize > 0 && f.Size > l.MaxFileSize {
		return false
	}
	if len(l.Allowed) > 0 && !l.Allowed[f.MimeType] {
		return false
	}
	return true
}
