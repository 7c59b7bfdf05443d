package analyze

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request is the optional analyze body. Absent fields fall back to the
// configured defaults; resolution happens once per request in Resolve.
type Request struct {
	DynamicField   *string    `json:"dynamic_field"`
	AIPrompt       *string    `json:"ai_prompt"`
	ReduceMetadata ReduceFlag `json:"reduce_metadata"`
	AITemperature  *float64   `json:"ai_temperature"`
}

// ReduceFlag accepts a JSON boolean or the literal string forms. Only boolean
// false and a case-insensitive "false" resolve to false; any other string,
// and absence, resolve to true.
type ReduceFlag struct {
	set   bool
	value bool
}

func (f *ReduceFlag) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		f.set = true
		f.value = b
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.set = true
		f.value = !strings.EqualFold(s, "false")
		return nil
	}

	return fmt.Errorf("reduce_metadata must be a boolean or a string")
}

// Defaults carries the configured fallback values for the analyze body.
type Defaults struct {
	DynamicField   string
	Prompt         string
	Temperature    float64
	MaxInputTokens int
}

// Options is the effective parameter set after resolving the request body
// against the configured defaults.
type Options struct {
	DynamicField string
	Prompt       string
	Reduce       bool
	Temperature  float32
}

// Resolve evaluates the resolution rules once per request.
func (r Request) Resolve(d Defaults) Options {
	opts := Options{
		DynamicField: d.DynamicField,
		Prompt:       d.Prompt,
		Reduce:       true,
		Temperature:  float32(d.Temperature),
	}

	if r.DynamicField != nil && *r.DynamicField != "" {
		opts.DynamicField = *r.DynamicField
	}
	if r.AIPrompt != nil && *r.AIPrompt != "" {
		opts.Prompt = *r.AIPrompt
	}
	if r.ReduceMetadata.set {
		opts.Reduce = r.ReduceMetadata.value
	}
	if r.AITemperature != nil {
		opts.Temperature = float32(*r.AITemperature)
	}

	return opts
}
