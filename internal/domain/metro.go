package domain

// Operator identifies who runs a metro line.
type Operator string

const (
	OperatorJR        Operator = "JR"
	OperatorMetro     Operator = "metro"
	OperatorMunicipal Operator = "municipal"
	OperatorPrivate   Operator = "private"
)

// Valid reports whether o is one of the known operators.
func (o Operator) Valid() bool {
	switch o {
	case OperatorJR, OperatorMetro, OperatorMunicipal, OperatorPrivate:
		return true
	}
	return false
}

// Static reference line. StationNames is ordered along the line and is used
// to estimate hop counts between two stations.
type MetroLine struct {
	ID           string
	Name         string
	NameLocal    string
	Color        string
	Operator     Operator
	StationNames []string
}

// Static reference station. A station on more than one line is an interchange.
type Station struct {
	ID        string
	Name      string
	NameLocal string
	Lat       float64
	Lng       float64
	LineIDs   []string
}

func (s Station) Coordinates() Coordinates { return Coordinates{Lat: s.Lat, Lng: s.Lng} }
