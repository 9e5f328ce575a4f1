package loads

import "errors"

// Kind identifies the structural attachment point a load channel applies to.
// The set is closed: it mirrors the channel names stored in a CFD bundle.
type Kind int

const (
	TopEnd Kind = iota
	Truss
	GIR
	CRing
	M1Cell
	M1Segments
	M2Segments
	MirrorCovers
)

// ErrDecimationRate indicates a decimation rate below 1.
var ErrDecimationRate = errors.New("loads: decimation rate must be at least 1")

var kindNames = [...]string{
	TopEnd:       "OSS_TopEnd_6F",
	Truss:        "OSS_Truss_6F",
	GIR:          "OSS_GIR_6F",
	CRing:        "OSS_CRING_6F",
	M1Cell:       "OSS_Cell_lcl_6F",
	M1Segments:   "OSS_M1_lcl_6F",
	M2Segments:   "MC_M2_lcl_force_6F",
	MirrorCovers: "OSS_mirrorCovers_6F",
}

// String returns the bundle key for the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindFromName resolves a bundle key back to its kind.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Kinds returns every known kind in bundle order.
func Kinds() []Kind {
	ks := make([]Kind, len(kindNames))
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}
