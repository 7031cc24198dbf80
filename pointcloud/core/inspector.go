package core

import "fmt"

// Slider edits one float in place within [Min, Max]. When Bounds is set it
// supplies the range instead, read on every edit.
type Slider struct {
	Folder string
	Label  string
	Min    float32
	Max    float32
	Bounds func() (float32, float32)
	Value  *float32
}

func (s Slider) Range() (float32, float32) {
	if s.Bounds != nil {
		return s.Bounds()
	}
	return s.Min, s.Max
}

func (s Slider) String() string {
	lo, hi := s.Range()
	return fmt.Sprintf("%s.%s = %.2f [%g, %g]", s.Folder, s.Label, *s.Value, lo, hi)
}

func (s Slider) set(v float32) float32 {
	lo, hi := s.Range()
	*s.Value = min(max(v, lo), hi)
	return *s.Value
}

// Inspector is a diagnostic panel over the camera and the particle mesh.
// It starts closed.
type Inspector struct {
	Sliders  []Slider
	Selected int
	Open     bool

	initial []float32
}

func NewInspector(cam *Camera, mesh *Node) *Inspector {
	in := &Inspector{
		Sliders: []Slider{
			{Folder: "Camera", Label: "z", Min: 0, Max: 1000, Value: &cam.Position[2]},
			{Folder: "Mesh", Label: "x", Min: -500, Max: 500, Value: &mesh.Position[0]},
			{Folder: "Mesh", Label: "y", Min: -500, Max: 500, Value: &mesh.Position[1]},
			{Folder: "Mesh", Label: "z", Value: &mesh.Position[2], Bounds: func() (float32, float32) {
				return -cam.Far, cam.Near
			}},
		},
	}
	for _, s := range in.Sliders {
		in.initial = append(in.initial, *s.Value)
	}
	return in
}

func (in *Inspector) Toggle() bool {
	in.Open = !in.Open
	return in.Open
}

func (in *Inspector) Current() Slider {
	return in.Sliders[in.Selected]
}

func (in *Inspector) Select(i int) (Slider, error) {
	if i < 0 || i >= len(in.Sliders) {
		return Slider{}, fmt.Errorf("slider %d out of range [0, %d)", i, len(in.Sliders))
	}
	in.Selected = i
	return in.Current(), nil
}

// Next selects the following slider, wrapping around.
func (in *Inspector) Next() Slider {
	in.Selected = (in.Selected + 1) % len(in.Sliders)
	return in.Current()
}

// Step moves the selected slider by fraction of its range.
func (in *Inspector) Step(fraction float32) float32 {
	s := in.Current()
	lo, hi := s.Range()
	return s.set(*s.Value + fraction*(hi-lo))
}

func (in *Inspector) Set(i int, v float32) (float32, error) {
	if i < 0 || i >= len(in.Sliders) {
		return 0, fmt.Errorf("slider %d out of range [0, %d)", i, len(in.Sliders))
	}
	return in.Sliders[i].set(v), nil
}

// Reset puts the selected slider back to the value it had when the inspector
// was built.
func (in *Inspector) Reset() Slider {
	in.Set(in.Selected, in.initial[in.Selected])
	return in.Current()
}
