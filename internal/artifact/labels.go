package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cropd/internal/common/fsutil"
)

// DefaultLabelsPath is the label file read when none is configured.
var DefaultLabelsPath = filepath.Join("ml", "export", "labels.json")

// defaultLabels is the PlantVillage class list the bundled model was trained on.
var defaultLabels = []string{
	"Pepper__bell___Bacterial_spot", "Pepper__bell___healthy", "PlantVillage",
	"Potato___Early_blight", "Potato___Late_blight", "Potato___healthy",
	"Tomato_Bacterial_spot", "Tomato_Early_blight", "Tomato_Late_blight",
	"Tomato_Leaf_Mold", "Tomato_Septoria_leaf_spot", "Tomato_Spider_mites_Two_spotted_spider_mite",
	"Tomato__Target_Spot", "Tomato__Tomato_YellowLeaf__Curl_Virus",
	"Tomato__Tomato_mosaic_virus", "Tomato_healthy",
}

// DefaultLabels returns a copy of the built-in label list.
func DefaultLabels() []string {
	out := make([]string, len(defaultLabels))
	copy(out, defaultLabels)
	return out
}

// LoadLabels reads a flat JSON array of class names from path. When the file
// does not exist the built-in list is returned and fromDefault is true.
// A file that exists but cannot be read or parsed is an error.
func LoadLabels(path string) (labels []string, fromDefault bool, err error) {
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultLabels(), true, nil
		}
		return nil, false, fmt.Errorf("read labels: %w", err)
	}
	if err := json.Unmarshal(b, &labels); err != nil {
		return nil, false, fmt.Errorf("parse labels %s: %w", p, err)
	}
	return labels, false, nil
}
