package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Pipeline field helpers for common field names
func Stage(name string) Field {
	return String("stage", name)
}

func Table(name string) Field {
	return String("table", name)
}

func Column(name string) Field {
	return String("column", name)
}

func MovieID(id int64) Field {
	return Int64("movie_id", id)
}

func PersonID(id int64) Field {
	return Int64("person_id", id)
}

func Rows(n int) Field {
	return Int("rows", n)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

func RunID(id string) Field {
	return String("run_id", id)
}
