// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config layers configuration values from multiple sources.
//
// A [Source] writes its key value pairs into a [Store]. [Read] applies
// sources in order, later sources overriding earlier ones, and the
// resulting [Manager] decodes the merged values into a struct:
//
//	m, err := config.Read(
//	    config.Map{"ligo_dir": "./ligo"},
//	    config.FromJson(config.NewFileReader(os.DirFS("."), "tzgen.json")),
//	    config.FromEnv("TZGEN_"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	var cfg struct {
//	    LigoDir string `config:"ligo_dir"`
//	}
//	err = m.Unmarshal(&cfg)
//
// Struct fields implementing [encoding.TextUnmarshaler] are decoded from
// their string values.
package config
