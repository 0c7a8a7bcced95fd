package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"registrar/internal/domain"
)

// recordMap is the resident id -> Record mapping in insertion order.
type recordMap = orderedmap.OrderedMap[string, domain.Record]

func newRecordMap() *recordMap { return orderedmap.New[string, domain.Record]() }

// indent matches the layout of records files written by earlier versions.
const indent = "    "

// encodeRecords renders records as an indented JSON object keyed by id,
// preserving insertion order. Names are written as typed: no HTML escaping.
func encodeRecords(records *recordMap) ([]byte, error) {
	var raw bytes.Buffer
	raw.WriteByte('{')
	for pair := records.Oldest(); pair != nil; pair = pair.Next() {
		if pair != records.Oldest() {
			raw.WriteByte(',')
		}
		if err := encodeValue(&raw, pair.Key); err != nil {
			return nil, err
		}
		raw.WriteByte(':')
		if err := encodeValue(&raw, pair.Value.Serialize()); err != nil {
			return nil, err
		}
	}
	raw.WriteByte('}')

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw.Bytes(), "", indent); err != nil {
		return nil, errors.Wrap(err, "could not indent records")
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "could not encode records")
	}
	buf.Write(bytes.TrimRight(b.Bytes(), "\n"))
	return nil
}

// decodeRecords parses a records file. Entries keep their file order; a
// repeated key keeps its first position and its last value.
func decodeRecords(data []byte, now time.Time) (*recordMap, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(domain.ErrMalformedStorage, "records file is not valid JSON")
	}
	if err := validateRecords(data); err != nil {
		return nil, err
	}

	records := newRecordMap()
	var decodeErr error
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		if !value.IsObject() {
			decodeErr = errors.Wrapf(domain.ErrMalformedStorage, "entry %q is not an object", id)
			return false
		}
		// Numbers stay json.Number so ages beyond 2^53 survive.
		var fields domain.Fields
		dec := json.NewDecoder(strings.NewReader(value.Raw))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			decodeErr = errors.Wrapf(domain.ErrMalformedStorage, "entry %q: %v", id, err)
			return false
		}
		rec, err := domain.DeserializeAt(fields, now)
		if err != nil {
			decodeErr = errors.Wrapf(err, "entry %q", id)
			return false
		}
		if rec.ID != id {
			decodeErr = errors.Wrapf(domain.ErrMalformedStorage, "entry %q holds student_id %q", id, rec.ID)
			return false
		}
		records.Set(id, rec)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return records, nil
}
