// Package replay runs YAML scripts of toast operations against a store.
//
// Scripts make renderer work reproducible: a designer can describe a
// sequence of toasts once and replay it against any renderer connected to
// the feed.
//
//	name: upload
//	steps:
//	  - op: loading
//	    id: upload
//	    message: Uploading report.pdf
//	  - op: height
//	    id: upload
//	    height: 52
//	  - op: promise
//	    loading: Processing
//	    success: Processed
//	    error: Processing failed
//	    outcome: http_error
//	    status: 502
//	    delay: 200ms
//	  - op: dismiss
//	    id: upload
package replay

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/sonner/internal/errors"
	"github.com/vango-dev/sonner/pkg/toast"
)

// Op names a script operation.
type Op string

const (
	OpMessage      Op = "message"
	OpSuccess      Op = "success"
	OpError        Op = "error"
	OpInfo         Op = "info"
	OpWarning      Op = "warning"
	OpLoading      Op = "loading"
	OpCreate       Op = "create"
	OpCustom       Op = "custom"
	OpDismiss      Op = "dismiss"
	OpHeight       Op = "height"
	OpRemoveHeight Op = "removeHeight"
	OpReset        Op = "reset"
	OpPromise      Op = "promise"
	OpWait         Op = "wait"
	OpSleep        Op = "sleep"
)

// Outcome is how a scripted promise settles.
type Outcome string

const (
	OutcomeResolve   Outcome = "resolve"
	OutcomeReject    Outcome = "reject"
	OutcomeHTTPError Outcome = "http_error"
)

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op          Op             `yaml:"op"`
	ID          toast.ID       `yaml:"id,omitempty"`
	Message     string         `yaml:"message,omitempty"`
	Kind        toast.Kind     `yaml:"kind,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Dismissable *bool          `yaml:"dismissable,omitempty"`
	Duration    time.Duration  `yaml:"duration,omitempty"`
	Fields      map[string]any `yaml:"fields,omitempty"`

	// custom
	Component string         `yaml:"component,omitempty"`
	Props     map[string]any `yaml:"props,omitempty"`

	// height
	Height   float64 `yaml:"height,omitempty"`
	Position string  `yaml:"position,omitempty"`

	// promise
	Loading    string        `yaml:"loading,omitempty"`
	Success    string        `yaml:"success,omitempty"`
	Error      string        `yaml:"error,omitempty"`
	Outcome    Outcome       `yaml:"outcome,omitempty"`
	Value      any           `yaml:"value,omitempty"`
	Status     int           `yaml:"status,omitempty"`
	Delay      time.Duration `yaml:"delay,omitempty"`
	Background bool          `yaml:"background,omitempty"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New("E150").
			Wrap(err).
			WithSuggestion("Check the YAML syntax of the script")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses the script at path.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E150").Wrap(err)
	}
	return Parse(data)
}

// Validate checks every step names a known operation with usable fields.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("E150").WithDetail("The script has no steps.")
	}
	for i, step := range s.Steps {
		if se := step.validate(); se != nil {
			se.Detail = fmt.Sprintf("Step %d: %s", i+1, se.Detail)
			return se
		}
	}
	return nil
}

func (st Step) validate() *errors.SonnerError {
	switch st.Op {
	case OpMessage, OpSuccess, OpError, OpInfo, OpWarning, OpLoading,
		OpDismiss, OpReset, OpWait, OpSleep:
	case OpCreate:
		if st.Kind != "" && !st.Kind.Valid() {
			return errors.New("E150").WithDetail(fmt.Sprintf("unknown kind %q", st.Kind))
		}
	case OpCustom:
		if st.Component == "" {
			return errors.New("E150").WithDetail("custom steps need a component")
		}
	case OpHeight, OpRemoveHeight:
		if st.ID == "" {
			return errors.New("E150").WithDetail(string(st.Op) + " steps need an id")
		}
	case OpPromise:
		switch st.Outcome {
		case "", OutcomeResolve, OutcomeReject, OutcomeHTTPError:
		default:
			return errors.New("E150").WithDetail(fmt.Sprintf("unknown outcome %q", st.Outcome))
		}
	default:
		return errors.New("E151").
			WithDetail(fmt.Sprintf("%q is not an operation", st.Op)).
			WithSuggestion("Use one of message, success, error, info, warning, loading, create, custom, dismiss, height, removeHeight, reset, promise, wait, sleep")
	}
	return nil
}
