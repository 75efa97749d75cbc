package eop

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// Finals2000ARow is one row of an IERS "finals2000A.data" file: the
// combined Bulletin A/B daily solution for a single MJD.
type Finals2000ARow struct {
	MJD         int
	PMX, PMY    float64
	UT1MinusUTC float64
	LOD         float64 // milliseconds; zero if not present on the row
}

// Finals2000A is the parsed content of a finals2000A.data file, sorted
// ascending by MJD.
type Finals2000A struct {
	Rows []Finals2000ARow
}

// ParseFinals2000A reads a finals2000A.data file. Each data row is sliced at
// fixed byte offsets and each field is trimmed of surrounding blanks: this
// reader extracts the MJD, the IERS Bulletin A polar motion and UT1-UTC
// columns (falling back to the Bulletin B columns further along the row when
// a Bulletin A field is blank), plus LOD when present. The column zones were
// not checked against IERS's published fixed-width table, which wasn't
// available in the retrieved corpus.
func ParseFinals2000A(r io.Reader) (*Finals2000A, error) {
	f := &Finals2000A{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 68 {
			continue
		}
		mjdField := strings.TrimSpace(line[7:15])
		if mjdField == "" {
			continue
		}
		mjd := atoi(mjdField)
		if mjd == 0 {
			continue
		}

		row := Finals2000ARow{MJD: mjd}

		if pmx := strings.TrimSpace(safeSlice(line, 19, 27)); pmx != "" {
			row.PMX = atof(pmx)
		} else if pmx := strings.TrimSpace(safeSlice(line, 134, 144)); pmx != "" {
			row.PMX = atof(pmx)
		}
		if pmy := strings.TrimSpace(safeSlice(line, 37, 46)); pmy != "" {
			row.PMY = atof(pmy)
		} else if pmy := strings.TrimSpace(safeSlice(line, 144, 154)); pmy != "" {
			row.PMY = atof(pmy)
		}
		if dut1 := strings.TrimSpace(safeSlice(line, 58, 68)); dut1 != "" {
			row.UT1MinusUTC = atof(dut1)
		} else if dut1 := strings.TrimSpace(safeSlice(line, 154, 165)); dut1 != "" {
			row.UT1MinusUTC = atof(dut1)
		}
		if lod := strings.TrimSpace(safeSlice(line, 79, 86)); lod != "" {
			row.LOD = atof(lod)
		}

		f.Rows = append(f.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "finals2000A: scan failed")
	}

	sort.Slice(f.Rows, func(i, j int) bool { return f.Rows[i].MJD < f.Rows[j].MJD })

	if len(f.Rows) == 0 {
		return nil, errors.Wrap(ostkerr.DataUnavailable, "finals2000A: no rows found")
	}
	return f, nil
}

func safeSlice(s string, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
