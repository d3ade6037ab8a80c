package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyRequestID  = "request_id"
	KeyStage      = "stage"
	KeyArtifactID = "artifact_id"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyGroups     = "groups"
	KeyPages      = "pages"
	KeyTemplate   = "template"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func ArtifactID(id int) slog.Attr      { return slog.Int(KeyArtifactID, id) }
func File(name string) slog.Attr       { return slog.String(KeyFile, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr           { return slog.String(KeyDir, d) }
func Groups(n int) slog.Attr           { return slog.Int(KeyGroups, n) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
