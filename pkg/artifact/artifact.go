// pkg/artifact/artifact.go
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidArtifact = errors.New("invalid model artifact")

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// Decode validates a JSON model artifact and returns it.
func Decode(data []byte) (*Artifact, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidArtifact, strings.Join(errs, "; "))
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks the constraints the JSON schema cannot express.
func (a *Artifact) Validate() error {
	n := len(a.FeatureNames)
	if n == 0 {
		return fmt.Errorf("%w: no feature names", ErrInvalidArtifact)
	}

	seen := make(map[string]bool, n)
	for _, name := range a.FeatureNames {
		if seen[name] {
			return fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = true
	}

	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return fmt.Errorf("%w: scaler has %d means and %d scales for %d features",
			ErrInvalidArtifact, len(a.Scaler.Mean), len(a.Scaler.Scale), n)
	}
	for i, s := range a.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("%w: scale of %s is zero", ErrInvalidArtifact, a.FeatureNames[i])
		}
	}

	if a.Model.Type != ModelTypeLinear {
		return fmt.Errorf("%w: unsupported model type %q", ErrInvalidArtifact, a.Model.Type)
	}
	if len(a.Model.Coefficients) != n {
		return fmt.Errorf("%w: model has %d coefficients for %d features",
			ErrInvalidArtifact, len(a.Model.Coefficients), n)
	}
	return nil
}
