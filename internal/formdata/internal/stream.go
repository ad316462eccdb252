package internal

import "strings"

// Stream is a read cursor over a string. Everything it returns is a substring of the
// original data.
type Stream struct {
	data string
}

func NewStream(data string) Stream {
	return Stream{data}
}

func (s *Stream) Find(char byte) int {
	return strings.IndexByte(s.data, char)
}

// FindSubstr returns the offset of str relative to the current position, or -1.
func (s *Stream) FindSubstr(str string) int {
	return strings.Index(s.data, str)
}

func (s *Stream) Compare(offset int, str string) bool {
	if len(s.data) < len(str)+offset {
		return false
	}

	return s.data[offset:offset+len(str)] == str
}

func (s *Stream) Consume(str string) bool {
	if s.Compare(0, str) {
		s.Advance(len(str))
		return true
	}

	return false
}

func (s *Stream) Advance(n int) (leftBehind string) {
	leftBehind, s.data = s.data[:n], s.data[n:]
	return leftBehind
}

// AdvanceLine returns the current line without the line ending. If no line ending is
// left, nothing is consumed.
func (s *Stream) AdvanceLine() (line string, ok bool) {
	newline := s.Find('\n')
	if newline == -1 {
		return "", false
	}

	line = s.Advance(newline + 1)
	line = line[:len(line)-1]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line, true
}

// Rest consumes everything that is left.
func (s *Stream) Rest() string {
	return s.Advance(len(s.data))
}
