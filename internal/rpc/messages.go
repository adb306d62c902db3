package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/support"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region messages
// EstimateRequest asks for predicted support for one configuration.
type EstimateRequest struct {
	Config support.Config `json:"config"`
}

// EstimateResponse carries the estimate and the panel it was computed on.
type EstimateResponse struct {
	Support          float64          `json:"support"`
	MRS              []support.MRSRow `json:"mrs"`
	Seed             uint32           `json:"seed"`
	Draws            int              `json:"draws"`
	PanelFingerprint string           `json:"panel_fingerprint"`
}

// EvaluateRequest asks for support plus the cost–benefit readout.
type EvaluateRequest struct {
	Config support.Config        `json:"config"`
	Inputs benefit.Inputs        `json:"inputs"`
	Costs  benefit.CostBreakdown `json:"costs"`
	Bounds *benefit.Bounds       `json:"bounds,omitempty"`
	Save   bool                  `json:"save,omitempty"`
	Name   string                `json:"name,omitempty"`
	Notes  string                `json:"notes,omitempty"`
}

// EvaluateResponse is the full readout for one design.
type EvaluateResponse struct {
	Support          float64                    `json:"support"`
	Result           benefit.Result             `json:"result"`
	Sensitivity      *benefit.SensitivityResult `json:"sensitivity,omitempty"`
	PerCapita        benefit.PerCapitaCost      `json:"per_capita"`
	Assessment       benefit.Assessment         `json:"assessment"`
	VSLMissing       bool                       `json:"vsl_missing,omitempty"`
	ScenarioID       string                     `json:"scenario_id,omitempty"`
	PanelFingerprint string                     `json:"panel_fingerprint"`
}
// #endregion messages

// #region struct-codec
// toStruct converts v to a Struct through its JSON form.
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("convert message: %w", err)
	}
	return out, nil
}

// fromStruct decodes s into v. With strict set, unknown fields are rejected.
func fromStruct(s *structpb.Struct, v interface{}, strict bool) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("convert message: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}
// #endregion struct-codec
