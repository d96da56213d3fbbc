package domain

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// PreviewType discriminates the two preview shapes.
type PreviewType string

const (
	PreviewTypeTabular PreviewType = "tabular"
	PreviewTypeImage   PreviewType = "image"
)

// Preview is the bounded, user-facing summary of an uploaded artifact.
// Exactly one of Tabular or Image is populated, selected by Type.
type Preview struct {
	Type    PreviewType     `json:"type" bson:"type"`
	Tabular *TabularPreview `json:"tabular,omitempty" bson:"tabular,omitempty"`
	Image   *ImagePreview   `json:"image,omitempty" bson:"image,omitempty"`
}

// TabularPreview holds the first rows of a parsed dataset plus true totals
// computed over the full input.
type TabularPreview struct {
	Headers      []string      `json:"headers" bson:"headers"`
	Rows         [][]Cell      `json:"rows" bson:"rows"`
	TotalRows    int           `json:"totalRows" bson:"totalRows"`
	TotalColumns int           `json:"totalColumns" bson:"totalColumns"`
	HasImages    bool          `json:"hasImages" bson:"hasImages"`
	ImageColumns []ImageColumn `json:"imageColumns,omitempty" bson:"imageColumns,omitempty"`
}

// ImageColumn marks a column whose cells predominantly contain image URLs.
// Confidence is the URL hit ratio over the sampled rows.
type ImageColumn struct {
	Index      int     `json:"index" bson:"index"`
	Name       string  `json:"name" bson:"name"`
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// ImagePreview carries derived artifacts for an uploaded image. Thumbnail and
// Compressed are base64-encoded JPEG bytes.
type ImagePreview struct {
	Thumbnail  string     `json:"thumbnail" bson:"thumbnail"`
	Compressed string     `json:"compressed" bson:"compressed"`
	Dimensions Dimensions `json:"dimensions" bson:"dimensions"`
	Format     string     `json:"format" bson:"format"`
	Size       int64      `json:"size" bson:"size"`
}

type Dimensions struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// CellKind tags the Cell variant.
type CellKind int

const (
	CellText CellKind = iota
	CellImage
)

// Cell is a tagged variant: either plain text or a resolved image reference.
// Text cells serialize as bare strings, image cells as objects, so the wire
// and stored forms stay compatible with plain string grids.
type Cell struct {
	Kind  CellKind
	Text  string
	Image *ImageCell
}

// ImageCell is the resolution outcome for one image-URL cell. Thumbnail and
// Error are mutually exclusive.
type ImageCell struct {
	URL       string `json:"url" bson:"url"`
	Thumbnail string `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Cached    bool   `json:"cached,omitempty" bson:"cached,omitempty"`
	Error     string `json:"error,omitempty" bson:"error,omitempty"`
}

// TextCell builds a plain text cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// ImageCellOf builds an image cell from a resolution outcome.
func ImageCellOf(ic *ImageCell) Cell {
	return Cell{Kind: CellImage, Image: ic}
}

type imageCellEnvelope struct {
	Type string `json:"type"`
	*ImageCell
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Kind == CellImage && c.Image != nil {
		return json.Marshal(imageCellEnvelope{Type: "image", ImageCell: c.Image})
	}
	return json.Marshal(c.Text)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var ic ImageCell
		if err := json.Unmarshal(data, &ic); err != nil {
			return err
		}
		*c = ImageCellOf(&ic)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = TextCell(s)
	return nil
}

func (c Cell) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if c.Kind == CellImage && c.Image != nil {
		return bson.MarshalValue(c.Image)
	}
	return bson.MarshalValue(c.Text)
}

func (c *Cell) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeString:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*c = TextCell(s)
		return nil
	case bson.TypeEmbeddedDocument:
		var ic ImageCell
		if err := bson.UnmarshalValue(t, data, &ic); err != nil {
			return err
		}
		*c = ImageCellOf(&ic)
		return nil
	default:
		return fmt.Errorf("cannot decode %v into a preview cell", t)
	}
}
