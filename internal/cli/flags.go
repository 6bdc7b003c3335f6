package cli

import (
	"fmt"
	"strings"
)

type stringFlag struct {
	Value  string
	WasSet bool
}

func (s *stringFlag) String() string { return s.Value }
func (s *stringFlag) Set(v string) error {
	s.Value = v
	s.WasSet = true
	return nil
}

type intFlag struct {
	Value  int
	WasSet bool
}

func (i *intFlag) String() string { return fmt.Sprintf("%d", i.Value) }
func (i *intFlag) Set(v string) error {
	var parsed int
	_, err := fmt.Sscanf(v, "%d", &parsed)
	if err != nil {
		return err
	}
	i.Value = parsed
	i.WasSet = true
	return nil
}

type boolFlag struct {
	Value  bool
	WasSet bool
}

func (b *boolFlag) String() string { return fmt.Sprintf("%t", b.Value) }
func (b *boolFlag) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	b.Value = v == "true" || v == "1" || v == "yes" || v == "y"
	b.WasSet = true
	return nil
}

func (b *boolFlag) IsBoolFlag() bool { return true }

// listFlag accepts a comma-separated list.
type listFlag struct {
	Values []string
	WasSet bool
}

func (l *listFlag) String() string { return strings.Join(l.Values, ",") }
func (l *listFlag) Set(v string) error {
	l.Values = l.Values[:0]
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			l.Values = append(l.Values, part)
		}
	}
	l.WasSet = true
	return nil
}
