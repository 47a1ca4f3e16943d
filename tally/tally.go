// Package tally computes the outcome of a scrutin.
package tally

// Result is the count of a scrutin. Abstentions are not expressed votes.
type Result struct {
	Pour            int  `json:"pour"`
	Contre          int  `json:"contre"`
	Abstention      int  `json:"abstention"`
	Exprimes        int  `json:"exprimes"`
	MajoriteAbsolue int  `json:"majorite_absolue"`
	Decided         bool `json:"decided"`
	Adopted         bool `json:"adopted"`
}

func Compute(pour, contre, abstention int) Result {
	r := Result{
		Pour:       pour,
		Contre:     contre,
		Abstention: abstention,
		Exprimes:   pour + contre,
	}
	r.MajoriteAbsolue = r.Exprimes/2 + 1
	if r.Exprimes > 0 {
		r.Decided = true
		r.Adopted = pour >= r.MajoriteAbsolue
	}
	return r
}

// Badge is the adoption label, empty while no vote was expressed.
func (r Result) Badge() string {
	switch {
	case !r.Decided:
		return ""
	case r.Adopted:
		return "Adopté"
	default:
		return "Rejeté"
	}
}
