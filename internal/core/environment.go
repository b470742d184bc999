package core

type Environment string

const (
	DevelopmentEnv Environment = "development"
	ProductionEnv  Environment = "production"
)

// ParseEnvironment normalizes a raw environment name, unknown values
// fall back to production
func ParseEnvironment(raw string) Environment {
	if Environment(raw) == DevelopmentEnv {
		return DevelopmentEnv
	}
	return ProductionEnv
}

func (e Environment) IsProduction() bool {
	return e == ProductionEnv
}

func (e Environment) IsDevelopment() bool {
	return e == DevelopmentEnv
}
