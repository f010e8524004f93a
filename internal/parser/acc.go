package parser

const accSentinel = "ACC"

// AccuracyDescription holds the four accuracy figures of the 2700-byte
// Accuracy Description (ACC) record. Each figure is in meters and is nil
// when the file reports "NA" or carries a malformed value: real-world files
// are routinely sloppy in this record, so individual fields fail soft
// rather than rejecting the whole file.
type AccuracyDescription struct {
	AbsoluteHorizontal *int
	AbsoluteVertical   *int
	RelativeHorizontal *int
	RelativeVertical   *int
}

// ParseACC parses the Accuracy Description record. The record is exactly
// 2700 bytes; data must contain at least that.
func ParseACC(data []byte) (*AccuracyDescription, error) {
	if len(data) < ACCSize {
		return nil, &ErrTruncatedRecord{Record: "Accuracy Description", Expected: ACCSize, Actual: len(data)}
	}

	r := newFieldReader(data)
	if sentinel := r.readString(3); sentinel != accSentinel {
		return nil, &ErrBadSentinel{Record: "Accuracy Description", Expected: accSentinel, Found: sentinel}
	}

	return &AccuracyDescription{
		AbsoluteHorizontal: r.readOptionalInt(4),
		AbsoluteVertical:   r.readOptionalInt(4),
		RelativeHorizontal: r.readOptionalInt(4),
		RelativeVertical:   r.readOptionalInt(4),
	}, nil
}
