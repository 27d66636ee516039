// Package topology materializes substance trees from YAML
// declarations. A declaration lists substances with their cycle
// configuration and nested children; instantiation goes through the
// substance-kind registry, so declared kinds map to registered
// factories.
package topology
