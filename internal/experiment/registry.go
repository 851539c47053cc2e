// Package experiment wires models and schemes together by name, so the
// CLI and config files can select them at runtime.
package experiment

import (
	"fmt"
	"sort"

	"github.com/evolve-sim/evolve/internal/config"
	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/models"
	"github.com/evolve-sim/evolve/internal/schemes"
)

// ModelFactory builds a model and its default initial state from the
// parameter map of a config file.
type ModelFactory func(params map[string]float64) (dynamo.Model, dynamo.State, error)

// SchemeFactory builds a scheme around a model from the run config.
type SchemeFactory func(m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error)

type Registry struct {
	models  map[string]ModelFactory
	schemes map[string]SchemeFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		models:  make(map[string]ModelFactory),
		schemes: make(map[string]SchemeFactory),
	}

	r.models["lorenz"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		m := models.NewLorenz()
		for k, v := range params {
			m.SetParam(k, v)
		}
		return m, m.DefaultState(), nil
	}
	r.models["vanderpol"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		m := models.NewVanDerPol()
		for k, v := range params {
			m.SetParam(k, v)
		}
		return m, m.DefaultState(), nil
	}
	r.models["rossler"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		m := models.NewRossler()
		for k, v := range params {
			m.SetParam(k, v)
		}
		return m, m.DefaultState(), nil
	}
	r.models["duffing"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		m := models.NewDuffing()
		for k, v := range params {
			m.SetParam(k, v)
		}
		return m, m.DefaultState(), nil
	}
	r.models["pendulum"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		m := models.NewPendulum()
		for k, v := range params {
			m.SetParam(k, v)
		}
		return m, m.DefaultState(), nil
	}
	r.models["doublependulum"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		m := models.NewDoublePendulum()
		for k, v := range params {
			m.SetParam(k, v)
		}
		return m, m.DefaultState(), nil
	}
	r.models["oscillator"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		omega := paramOr(params, "omega", 1.0)
		zeta := paramOr(params, "zeta", 0.1)
		m, err := models.NewOscillator(omega, zeta)
		if err != nil {
			return nil, nil, err
		}
		return m, m.DefaultState(), nil
	}
	r.models["fisher"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		n := int(paramOr(params, "n", 64))
		m, err := models.NewFisher(n, paramOr(params, "diffusion", 1e-3), paramOr(params, "rate", 1.0))
		if err != nil {
			return nil, nil, err
		}
		return m, m.DefaultState(), nil
	}
	r.models["burgers"] = func(params map[string]float64) (dynamo.Model, dynamo.State, error) {
		n := int(paramOr(params, "n", 128))
		m, err := models.NewBurgers(n, paramOr(params, "nu", 0.02))
		if err != nil {
			return nil, nil, err
		}
		return m, m.DefaultState(), nil
	}

	r.schemes["euler"] = func(m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error) {
		return schemes.NewEuler(m, proto, cfg.Dt)
	}
	r.schemes["rk4"] = func(m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error) {
		return schemes.NewRK4(m, proto, cfg.Dt)
	}
	r.schemes["dopri5"] = func(m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error) {
		return schemes.NewEmbedded(m, proto, schemes.DormandPrince(), adaptiveConfig(cfg))
	}
	r.schemes["bosh3"] = func(m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error) {
		return schemes.NewEmbedded(m, proto, schemes.BogackiShampine(), adaptiveConfig(cfg))
	}
	r.schemes["semieuler"] = func(m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error) {
		return schemes.NewSemiImplicitEuler(m, proto, cfg.Dt)
	}
	r.schemes["semirk4"] = func(m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error) {
		return schemes.NewSemiImplicitRK4(m, proto, cfg.Dt)
	}

	return r
}

func adaptiveConfig(cfg *config.Config) schemes.AdaptiveConfig {
	a := cfg.Adaptive
	initial := a.InitialStep
	if initial == 0 {
		initial = cfg.Dt
	}
	return schemes.AdaptiveConfig{
		InitialStep:   initial,
		RTol:          a.RTol,
		ATol:          a.ATol,
		Safety:        a.Safety,
		MinFactor:     a.MinFactor,
		MaxFactor:     a.MaxFactor,
		MaxRejections: a.MaxRejections,
	}
}

func paramOr(params map[string]float64, name string, def float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return def
}

func (r *Registry) GetModel(name string, params map[string]float64) (dynamo.Model, dynamo.State, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(params)
}

func (r *Registry) GetScheme(name string, m dynamo.Model, proto dynamo.State, cfg *config.Config) (dynamo.Scheme, error) {
	fn, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s", name)
	}
	return fn(m, proto, cfg)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListSchemes() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
