// Package proto defines the JSON bodies exchanged with the calculation service.
//
// Field names match the service exactly and must not change.
package proto

// CalculatePath is appended to the service base URL.
const CalculatePath = "/calculate"

// CalculateRequest is the HTTP POST /calculate request body.
type CalculateRequest struct {
	// Image is the drawing encoded as a data URI ("data:image/png;base64,...").
	Image string `json:"image"`
	// DictOfVars holds the variable bindings accumulated from earlier results.
	DictOfVars map[string]string `json:"dict_of_vars"`
}

// CalculateResponse is the HTTP POST /calculate response body.
type CalculateResponse struct {
	// Status is a short outcome label shown to the user.
	Status string `json:"status"`
	// Message is a human readable description of the outcome.
	Message string `json:"message"`
	// Data lists the recognized expressions in order. A null value decodes as
	// an empty list.
	Data []Result `json:"data"`
}

// Result is one recognized expression.
type Result struct {
	// Expr is the expression, or the variable name when Assign is set.
	Expr string `json:"expr"`
	// Result is the computed value.
	Result string `json:"result"`
	// Assign marks a variable assignment that later requests should see.
	Assign bool `json:"assign"`
}

// Assignments returns the Expr -> Result pairs of every Assign entry, later
// entries winning on duplicate names.
func (r *CalculateResponse) Assignments() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for _, d := range r.Data {
		if d.Assign {
			out[d.Expr] = d.Result
		}
	}
	return out
}
