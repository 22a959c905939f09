package ports

// Logger is the subset of Nakama's runtime.Logger the app services need so
// collaborator failures can be logged without importing the runtime package.
// runtime.Logger satisfies it directly.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
