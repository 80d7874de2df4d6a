package lines

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/scantally/internal/domain"
)

const maxLineSize = 1 << 20

// Read parses observations from r, one per line as "CATEGORY<TAB>PAYLOAD".
// A line without a tab is a bare payload. Blank lines and "#" comments are
// skipped.
func Read(ctx context.Context, r io.Reader) ([]domain.Observation, error) {
	var observations []domain.Observation
	err := Scan(ctx, r, func(observation domain.Observation) error {
		observations = append(observations, observation)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return observations, nil
}

// Scan calls fn for every observation in r as it is read.
func Scan(ctx context.Context, r io.Reader, fn func(domain.Observation) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		observation, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := fn(observation); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read observations: %w", err)
	}

	return nil
}

func ParseLine(line string) (domain.Observation, bool) {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return domain.Observation{}, false
	}

	category, payload, found := strings.Cut(line, "\t")
	if !found {
		return domain.Observation{Payload: line}, true
	}

	return domain.Observation{Payload: payload, Category: category}, true
}
