package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
)

// writeResult prints v as indented JSON. With a --jq expression, each result
// of the query is printed instead; string results are printed raw.
func writeResult(w io.Writer, v any, expr string) error {
	if expr == "" {
		return encodeJSON(w, v)
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return &Error{Code: ExitUsage, Message: "invalid --jq expression", Hint: err.Error(), Cause: err}
	}

	// gojq only understands plain JSON values.
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("decode output: %w", err)
	}

	iter := query.Run(input)
	for {
		result, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := result.(error); ok {
			if halt, ok := err.(*gojq.HaltError); ok && halt.Value() == nil {
				return nil
			}
			return &Error{Code: ExitUsage, Message: "--jq failed", Hint: err.Error(), Cause: err}
		}
		if s, ok := result.(string); ok {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
			continue
		}
		if err := encodeJSON(w, result); err != nil {
			return err
		}
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
