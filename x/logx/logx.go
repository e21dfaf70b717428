// Package logx is the line logger used across the firmware. Lines go to the
// builtin println so MCU builds pull in neither fmt nor log.
package logx

// Logger writes one line.
type Logger func(line string)

// Println writes line to the console.
func Println(line string) { println(line) }

// Discard drops everything.
func Discard(string) {}

// With returns a logger that prefixes every line with "[tag] ".
// A nil receiver logs to the console.
func (l Logger) With(tag string) Logger {
	if l == nil {
		l = Println
	}
	prefix := "[" + tag + "] "
	return func(line string) { l(prefix + line) }
}

// Recorder collects lines, for tests.
type Recorder struct {
	Lines []string
}

func (r *Recorder) Log(line string) { r.Lines = append(r.Lines, line) }
