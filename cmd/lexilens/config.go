package main

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
)

// loadConfig reads a TOML configuration file and flattens its tables into
// dotted keys, e.g.
//
//	[bionic]
//	percent = 60
//
// becomes "bionic.percent" = "60". An empty path yields an empty
// configuration.
func loadConfig(path string) (testconfig.Conf, error) {
	conf := testconfig.Conf{}
	if path == "" {
		return conf, nil
	}
	var tree map[string]interface{}
	md, err := toml.DecodeFile(path, &tree)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read configuration %s", path)
	}
	flatten(conf, "", tree)
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		tracer().Infof("configuration keys not understood: %v", undecoded)
	}
	keys := make([]string, 0, len(conf))
	for k := range conf {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tracer().Debugf("configuration %s: %v", path, keys)
	return conf, nil
}

func flatten(conf testconfig.Conf, prefix string, tree map[string]interface{}) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(conf, key, val)
		case string:
			conf[key] = val
		default:
			conf[key] = fmt.Sprint(val)
		}
	}
}
