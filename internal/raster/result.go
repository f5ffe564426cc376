package raster

// CellStatus reports the outcome of the pipeline for one cell and year.
// The three states are deliberately distinct: a computed layer value, a
// cell with no usable data, and a cell whose computation failed must
// never be conflated.
type CellStatus uint8

const (
	CellOK CellStatus = iota
	CellNoData
	CellFailed
)

// String returns the status label used in reports and persisted records.
func (s CellStatus) String() string {
	switch s {
	case CellOK:
		return "ok"
	case CellNoData:
		return "nodata"
	default:
		return "failed"
	}
}

// GridResult holds one day-of-year layer per (year, transition) plus a
// per-year status layer. Layers are row-major with Cols entries per row.
type GridResult struct {
	Rows  int
	Cols  int
	Years []int

	// layers[year][transition][row*Cols+col] is the crossing DOY, or 0
	// when the cell is OK but the threshold was never reached.
	layers map[int]map[string][]int

	// status[year][row*Cols+col]
	status map[int][]CellStatus
}

func newGridResult(rows, cols int, years []int, transitions []string) *GridResult {
	g := &GridResult{
		Rows:   rows,
		Cols:   cols,
		Years:  years,
		layers: make(map[int]map[string][]int, len(years)),
		status: make(map[int][]CellStatus, len(years)),
	}
	for _, y := range years {
		byTransition := make(map[string][]int, len(transitions))
		for _, name := range transitions {
			byTransition[name] = make([]int, rows*cols)
		}
		g.layers[y] = byTransition

		st := make([]CellStatus, rows*cols)
		for i := range st {
			st[i] = CellNoData
		}
		g.status[y] = st
	}
	return g
}

// Status returns the cell outcome for one year.
func (g *GridResult) Status(year, row, col int) CellStatus {
	st, ok := g.status[year]
	if !ok {
		return CellNoData
	}
	return st[row*g.Cols+col]
}

// DOY returns the crossing day-of-year for one cell. The second return
// is false when the cell is not OK or the threshold was never crossed.
func (g *GridResult) DOY(year int, transition string, row, col int) (int, bool) {
	if g.Status(year, row, col) != CellOK {
		return 0, false
	}
	layer, ok := g.layers[year][transition]
	if !ok {
		return 0, false
	}
	doy := layer[row*g.Cols+col]
	if doy == 0 {
		return 0, false
	}
	return doy, true
}

// Layer returns a copy of one (year, transition) DOY layer in row-major
// order; 0 marks cells without a crossing.
func (g *GridResult) Layer(year int, transition string) []int {
	src, ok := g.layers[year][transition]
	if !ok {
		return nil
	}
	out := make([]int, len(src))
	copy(out, src)
	return out
}
