package logger

type nopLogger struct{}

// NewNop returns a logger that discards everything. Useful in tests and in
// one-shot commands that only want their own output.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}
