package main

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/skison/dijkstramap/dijkstra"
)

// decodeOptions turns the loosely typed "options" object of a recalculate
// request into dijkstra.Options on top of the defaults. Decoding is weakly
// typed so JSON object keys coerce into the int terrain tags and JSON
// numbers into int termination points. Unrecognized keys are ignored.
func decodeOptions(raw map[string]interface{}) (dijkstra.Options, error) {
	opts := dijkstra.DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, fmt.Errorf("server: build options decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return opts, fmt.Errorf("server: decode options: %w", err)
	}

	return opts, nil
}
