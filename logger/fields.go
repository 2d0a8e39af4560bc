package logger

import (
	"time"
)

// Field keys shared by query, plan and CLI log lines.
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldPlan       = "plan"
	FieldCode       = "code"
	FieldRecordsIn  = "records_in"
	FieldRecordsOut = "records_out"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldPath       = "path"
)

// Fields builds a field map from alternating key-value pairs. Non-string keys
// and a trailing key without a value are dropped.
//
//	log.Debug("plan loaded", logger.Fields(logger.FieldPath, path, "steps", 3))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// RunFields describes a finished query run.
func RunFields(plan string, in, out int, d time.Duration) map[string]any {
	return map[string]any{
		FieldPlan:       plan,
		FieldRecordsIn:  in,
		FieldRecordsOut: out,
		FieldDuration:   d.Milliseconds(),
	}
}

// RejectFields describes a run that failed before producing output.
func RejectFields(code string, in int, err error) map[string]any {
	f := map[string]any{
		FieldCode:      code,
		FieldRecordsIn: in,
	}
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}
