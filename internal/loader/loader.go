// Package loader implements the CSV loader collaborator of §6: it decodes
// the instance input file into the core's Instance collection, enforcing
// the record-validity rules (non-empty id/type, finite coordinates,
// no duplicate ids) before the core ever sees the data.
package loader

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/kelindar/intmap"
	"github.com/rotisserie/eris"

	colocate "github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features"
)

// record is the CSV row shape: {id, type, x, y} per §6's instance input.
type record struct {
	ID   string  `csv:"id"`
	Type string  `csv:"type"`
	X    float64 `csv:"x"`
	Y    float64 `csv:"y"`
}

// Load reads the instance CSV at path and builds an InstanceSet, rejecting
// duplicate ids and malformed records (§6, §7 InputMalformed).
func Load(path string) (*colocate.InstanceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open dataset")
	}
	defer f.Close()

	return decode(f)
}

// decode is Load's testable core, operating on any reader.
func decode(r io.Reader) (*colocate.InstanceSet, error) {
	csvReader := csv.NewReader(r)
	dec, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		return nil, eris.Wrap(err, "loader: create decoder")
	}

	seen := intmap.New(64, 0.80)
	var instances []colocate.Instance
	rowIndex := uint32(0)

	for {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, eris.Wrap(err, "loader: decode record")
		}

		inst, err := colocate.NewInstance(rec.ID, colocate.FeatureType(rec.Type), rec.X, rec.Y)
		if err != nil {
			return nil, eris.Wrapf(err, "loader: row %d", rowIndex)
		}

		h := hashID(inst.ID)
		if priorIndex, exists := seen.Load(h); exists && instances[priorIndex].ID == inst.ID {
			return nil, eris.Wrapf(colocate.ErrInputMalformed, "loader: duplicate instance id %q at row %d", inst.ID, rowIndex)
		}
		seen.Store(h, rowIndex)

		instances = append(instances, inst)
		rowIndex++
	}

	return colocate.NewInstanceSet(instances)
}

// hashID maps an instance id to a uint32 key for the intmap presence
// check, an FNV-1a hash of the id bytes. A hash collision between two
// distinct ids only defeats this fast-path check, never correctness:
// NewInstanceSet re-verifies duplicates by full string id afterward.
func hashID(id string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	return h
}
