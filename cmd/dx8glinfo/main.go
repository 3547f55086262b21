// Command dx8glinfo reports the backend dx8gl would resolve given the
// current environment/config-file precedence, plus on-disk shader
// cache statistics. It exists for inspecting the precedence rules
// internal/config implements by hand, the way gogpu-gg/cmd/ggdemo is a
// thin cmd/ wrapper around a library rather than a standalone program.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"dx8gl/driver"
	_ "dx8gl/driver/null"
	_ "dx8gl/driver/webgpu"
	"dx8gl/internal/config"
	"dx8gl/internal/diskcache"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to a dx8gl.toml config file")
		backend = flag.String("backend", "", "substring matched against a registered driver's name")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("dx8glinfo: loading config: %v", err)
	}

	fmt.Println("config:")
	fmt.Printf("  cache_dir:           %q\n", cfg.CacheDir)
	fmt.Printf("  pipeline_cache_size: %d\n", cfg.PipelineCacheSize)
	fmt.Printf("  log_level:           %s\n", cfg.LogLevel)

	fmt.Println("drivers:")
	for _, d := range driver.Drivers() {
		fmt.Printf("  %s\n", d.Name())
	}

	resolved := resolveDriver(*backend)
	if resolved == nil {
		fmt.Printf("resolved backend: none matches %q\n", *backend)
	} else {
		fmt.Printf("resolved backend: %s\n", resolved.Name())
	}

	if cfg.CacheDir == "" {
		fmt.Println("shader cache: disabled (cache_dir is empty)")
		return
	}
	printCacheStats(cfg.CacheDir)
}

// resolveDriver mirrors internal/ctxt.Open's selection rule (first
// registered driver whose name contains name) without opening it,
// since dx8glinfo only reports what would be chosen.
func resolveDriver(name string) driver.Driver {
	for _, d := range driver.Drivers() {
		if strings.Contains(d.Name(), name) {
			return d
		}
	}
	return nil
}

func printCacheStats(dir string) {
	c, err := diskcache.Open(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shader cache: %v\n", err)
		return
	}
	defer c.Close()

	s, err := c.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shader cache: %v\n", err)
		return
	}
	fmt.Println("shader cache:")
	fmt.Printf("  dir:     %s\n", dir)
	fmt.Printf("  entries: %d\n", s.Entries)
	fmt.Printf("  bytes:   %d\n", s.Bytes)
}
