package config

// LayoutConfig is the arena floor and its initial spawns.
type LayoutConfig struct {
	Width  float64           `yaml:"width"`
	Height float64           `yaml:"height"`
	Player PointConfig       `yaml:"player"`
	Units  []UnitSpawnConfig `yaml:"units"`
}

type UnitSpawnConfig struct {
	Unit     string  `yaml:"unit"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}
