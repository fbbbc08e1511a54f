package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mklimuk/scale/nau7802"
)

// config is the on-disk state of one scale: analog settings plus the
// calibration values the chip cannot retain across power cycles.
type config struct {
	Gain              int     `yaml:"gain"`
	LDO               float64 `yaml:"ldo_volts"`
	SampleRate        int     `yaml:"sample_rate"`
	Samples           int     `yaml:"samples"`
	ZeroOffset        float64 `yaml:"zero_offset"`
	CalibrationFactor float64 `yaml:"calibration_factor"`
}

func defaultConfig() *config {
	return &config{
		Gain:       128,
		LDO:        3.3,
		SampleRate: 10,
		Samples:    8,
	}
}

func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *config) save(path string) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("could not write config file %s: %w", path, err)
	}
	return nil
}

func (cfg *config) gain() (nau7802.Gain, error) {
	switch cfg.Gain {
	case 1:
		return nau7802.Gain1, nil
	case 2:
		return nau7802.Gain2, nil
	case 4:
		return nau7802.Gain4, nil
	case 8:
		return nau7802.Gain8, nil
	case 16:
		return nau7802.Gain16, nil
	case 32:
		return nau7802.Gain32, nil
	case 64:
		return nau7802.Gain64, nil
	case 128:
		return nau7802.Gain128, nil
	}
	return 0, fmt.Errorf("%d is not a valid gain; choose from 1,2,4,8,16,32,64,128", cfg.Gain)
}

func (cfg *config) ldo() (nau7802.LDO, error) {
	switch cfg.LDO {
	case 2.4:
		return nau7802.LDO2V4, nil
	case 2.7:
		return nau7802.LDO2V7, nil
	case 3.0:
		return nau7802.LDO3V0, nil
	case 3.3:
		return nau7802.LDO3V3, nil
	case 3.6:
		return nau7802.LDO3V6, nil
	case 3.9:
		return nau7802.LDO3V9, nil
	case 4.2:
		return nau7802.LDO4V2, nil
	case 4.5:
		return nau7802.LDO4V5, nil
	}
	return 0, fmt.Errorf("%.1f is not a valid LDO voltage; choose from 2.4-4.5 in 0.3 steps", cfg.LDO)
}

func (cfg *config) sampleRate() (nau7802.SampleRate, error) {
	switch cfg.SampleRate {
	case 10:
		return nau7802.SPS10, nil
	case 20:
		return nau7802.SPS20, nil
	case 40:
		return nau7802.SPS40, nil
	case 80:
		return nau7802.SPS80, nil
	case 320:
		return nau7802.SPS320, nil
	}
	return 0, fmt.Errorf("%d is not a valid sample rate; choose from 10,20,40,80,320", cfg.SampleRate)
}
