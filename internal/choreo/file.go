package choreo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/bop/internal/rig"
)

// filePose mirrors one pose entry in a choreography YAML document. Omitted
// fields stay zero, which reads as the neutral joint.
type filePose struct {
	Name     string  `yaml:"name"`
	Spine    float64 `yaml:"spine"`
	HeadTilt float64 `yaml:"head_tilt"`
	Root     float64 `yaml:"root"`
	LUpper   float64 `yaml:"l_upper"`
	LFore    float64 `yaml:"l_fore"`
	LHand    float64 `yaml:"l_hand"`
	RUpper   float64 `yaml:"r_upper"`
	RFore    float64 `yaml:"r_fore"`
	RHand    float64 `yaml:"r_hand"`
	LThigh   float64 `yaml:"l_thigh"`
	LShin    float64 `yaml:"l_shin"`
	RThigh   float64 `yaml:"r_thigh"`
	RShin    float64 `yaml:"r_shin"`
}

type fileLibrary struct {
	Name     string     `yaml:"name"`
	Sequence []int      `yaml:"sequence"`
	Poses    []filePose `yaml:"poses"`
}

// Load reads a pose library from a YAML file and validates it.
func Load(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Library{}, fmt.Errorf("failed to read choreography file: %w", err)
	}
	lib, err := parse(data)
	if err != nil {
		return Library{}, fmt.Errorf("choreography file %s: %w", path, err)
	}
	return lib, nil
}

// parse decodes and validates a YAML library document. When the document
// omits a sequence, the poses are visited in file order.
func parse(data []byte) (Library, error) {
	var doc fileLibrary
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Library{}, fmt.Errorf("failed to parse choreography: %w", err)
	}

	lib := Library{Name: doc.Name, Sequence: doc.Sequence}
	if lib.Name == "" {
		lib.Name = "custom"
	}
	for _, fp := range doc.Poses {
		lib.Poses = append(lib.Poses, NamedPose{
			Name: fp.Name,
			Pose: rig.Pose{
				Spine:    fp.Spine,
				HeadTilt: fp.HeadTilt,
				Root:     fp.Root,
				LUpper:   fp.LUpper,
				LFore:    fp.LFore,
				LHand:    fp.LHand,
				RUpper:   fp.RUpper,
				RFore:    fp.RFore,
				RHand:    fp.RHand,
				LThigh:   fp.LThigh,
				LShin:    fp.LShin,
				RThigh:   fp.RThigh,
				RShin:    fp.RShin,
			},
		})
	}
	if len(lib.Sequence) == 0 {
		for i := range lib.Poses {
			lib.Sequence = append(lib.Sequence, i)
		}
	}

	if err := lib.Validate(); err != nil {
		return Library{}, err
	}
	return lib, nil
}
