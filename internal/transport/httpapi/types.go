package httpapi

import "github.com/cwbudde/algo-rlc/dsp/filter/rlc"

const (
	codeBadRequest = "bad_request"
	codeInternal   = "internal_error"
)

// SolveRequest is the body of POST /v1/solve. Missing, null or zero
// fields are treated as unknown.
type SolveRequest struct {
	Topology rlc.Topology `json:"topology"`
	R        *float64     `json:"r,omitempty"`
	X        *float64     `json:"x,omitempty"`
	F        *float64     `json:"f,omitempty"`
}

// PartialSpec converts the request fields to solver inputs.
func (req SolveRequest) PartialSpec() rlc.PartialSpec {
	return rlc.PartialSpec{
		R: quantity(req.R),
		X: quantity(req.X),
		F: quantity(req.F),
	}
}

func quantity(v *float64) rlc.Quantity {
	if v == nil {
		return rlc.Unknown()
	}
	return rlc.FromInput(*v)
}

// SolveResponse carries the single computed quantity.
type SolveResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`

	// Nearest is the closest E12 value for a solved R, L or C.
	Nearest *float64 `json:"nearest_e12,omitempty"`
}

// CandidateDTO is one suggested standard-value pair.
type CandidateDTO struct {
	R             float64 `json:"r"`
	X             float64 `json:"x"`
	Cutoff        float64 `json:"cutoff"`
	RelativeError float64 `json:"relative_error"`
}

// SuggestResponse is the body of GET /v1/suggest.
type SuggestResponse struct {
	Topology   rlc.Topology   `json:"topology"`
	Target     float64        `json:"target"`
	Candidates []CandidateDTO `json:"candidates"`
}

// ResponsePoint is one sample of the analog frequency response.
type ResponsePoint struct {
	Frequency   float64 `json:"frequency"`
	MagnitudeDB float64 `json:"magnitude_db"`
	Phase       float64 `json:"phase"`
}

// ResponseResponse is the body of GET /v1/response.
type ResponseResponse struct {
	Cutoff       float64         `json:"cutoff"`
	TimeConstant float64         `json:"time_constant"`
	Kind         string          `json:"kind"`
	Points       []ResponsePoint `json:"points"`
}

// MeasureResponse is the body of GET /v1/measure.
type MeasureResponse struct {
	Nominal       float64 `json:"nominal"`
	Measured      float64 `json:"measured"`
	RelativeError float64 `json:"relative_error"`
	SampleRate    float64 `json:"sample_rate"`
	FFTSize       int     `json:"fft_size"`
}

// ErrorResponse is returned for every non-2xx status.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
