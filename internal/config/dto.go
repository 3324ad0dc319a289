package config

// FileTarget is the on-disk form of a target description. The same
// structure is read from YAML and TOML.
type FileTarget struct {
	Target       string            `yaml:"target" toml:"target"`
	Distance     *FileQuantity     `yaml:"distance" toml:"distance"`
	Constants    FileConstants     `yaml:"constants" toml:"constants"`
	References   FileReferences    `yaml:"references" toml:"references"`
	Regions      FileRegions       `yaml:"regions" toml:"regions"`
	Measurements []FileMeasurement `yaml:"measurements" toml:"measurements"`
	Sky          []FileSky         `yaml:"sky" toml:"sky"`
	Derive       FileDerive        `yaml:"derive" toml:"derive"`
}

type FileQuantity struct {
	Value float64 `yaml:"value" toml:"value"`
	Unit  string  `yaml:"unit" toml:"unit"`
}

type FileConstants struct {
	G      *FileQuantity `yaml:"g" toml:"g"`
	MSigma *FileMSigma   `yaml:"m_sigma" toml:"m_sigma"`
}

type FileMSigma struct {
	Coefficient FileQuantity `yaml:"coefficient" toml:"coefficient"`
	Pivot       FileQuantity `yaml:"pivot" toml:"pivot"`
	Exponent    float64      `yaml:"exponent" toml:"exponent"`
}

type FileReferences struct {
	BlackHoleMass    *FileQuantity `yaml:"black_hole_mass" toml:"black_hole_mass"`
	BlackHoleLogMass *float64      `yaml:"log_black_hole_mass" toml:"log_black_hole_mass"`
	EnclosedMass     *FileQuantity `yaml:"enclosed_mass" toml:"enclosed_mass"`
}

type FileRegions struct {
	Spatial  []FileSpatial  `yaml:"spatial" toml:"spatial"`
	Spectral []FileSpectral `yaml:"spectral" toml:"spectral"`
}

type FileSpatial struct {
	ID     string  `yaml:"id" toml:"id"`
	Shape  string  `yaml:"shape" toml:"shape"`
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Radius float64 `yaml:"radius" toml:"radius"`
	XMin   float64 `yaml:"xmin" toml:"xmin"`
	YMin   float64 `yaml:"ymin" toml:"ymin"`
	XMax   float64 `yaml:"xmax" toml:"xmax"`
	YMax   float64 `yaml:"ymax" toml:"ymax"`
}

type FileSpectral struct {
	ID    string       `yaml:"id" toml:"id"`
	Lower FileQuantity `yaml:"lower" toml:"lower"`
	Upper FileQuantity `yaml:"upper" toml:"upper"`
}

type FileSelection struct {
	Spatial  string `yaml:"spatial" toml:"spatial"`
	Spectral string `yaml:"spectral" toml:"spectral"`
}

type FileMeasurement struct {
	Spatial  string                  `yaml:"spatial" toml:"spatial"`
	Spectral string                  `yaml:"spectral" toml:"spectral"`
	Fields   map[string]FileQuantity `yaml:"fields" toml:"fields"`
}

type FileSky struct {
	Region string        `yaml:"region" toml:"region"`
	RA     FileQuantity  `yaml:"ra" toml:"ra"`
	Dec    FileQuantity  `yaml:"dec" toml:"dec"`
	Radius *FileQuantity `yaml:"radius" toml:"radius"`
}

type FileDerive struct {
	Dispersion *FileSelection `yaml:"dispersion" toml:"dispersion"`
	Rotation   *FileRotation  `yaml:"rotation" toml:"rotation"`
	Curve      *FileCurve     `yaml:"curve" toml:"curve"`
}

type FileRotation struct {
	Approaching FileSelection `yaml:"approaching" toml:"approaching"`
	Receding    FileSelection `yaml:"receding" toml:"receding"`
	Angle       *FileQuantity `yaml:"angle" toml:"angle"`
}

type FileCurve struct {
	RadiusUnit   string    `yaml:"radius_unit" toml:"radius_unit"`
	VelocityUnit string    `yaml:"velocity_unit" toml:"velocity_unit"`
	Radius       []float64 `yaml:"radius" toml:"radius"`
	Velocity     []float64 `yaml:"velocity" toml:"velocity"`
}
