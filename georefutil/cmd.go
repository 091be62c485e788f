/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package georefutil contains the command-line interface for georef.
package georefutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ctessum/geom/encoding/geojson"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/georef"
	"github.com/spatialmodel/georef/crs"
	"github.com/spatialmodel/georef/geodesic"
	"github.com/spatialmodel/georef/operation"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives the diagnostic output of all commands.
var Log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to georef.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose turns on debug logging of coordinate operation
              resolution and geodesic fallbacks.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "catalog",
			usage: `
              catalog is the path to a TOML file of named coordinate reference
              systems. The path can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ellipsoid",
			usage: `
              ellipsoid is the figure of the Earth used for geodesic calculations.
              Acceptable values are WGS84, GRS80, CLRK66, INTL, AIRY, BESSEL,
              SPHERE and AUTHALIC.`,
			defaultVal: "WGS84",
			flagsets:   []*pflag.FlagSet{inverseCmd.Flags(), directCmd.Flags(), pathCmd.Flags()},
		},
		{
			name: "lat1",
			usage: `
              lat1 is the latitude of the starting point in decimal degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{inverseCmd.Flags(), directCmd.Flags(), pathCmd.Flags()},
		},
		{
			name: "lon1",
			usage: `
              lon1 is the longitude of the starting point in decimal degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{inverseCmd.Flags(), directCmd.Flags(), pathCmd.Flags()},
		},
		{
			name: "lat2",
			usage: `
              lat2 is the latitude of the destination point in decimal degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{inverseCmd.Flags(), pathCmd.Flags()},
		},
		{
			name: "lon2",
			usage: `
              lon2 is the longitude of the destination point in decimal degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{inverseCmd.Flags(), pathCmd.Flags()},
		},
		{
			name: "azimuth",
			usage: `
              azimuth is the starting azimuth in decimal degrees clockwise
              from north.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{directCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance is the geodesic distance to travel in metres.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{directCmd.Flags()},
		},
		{
			name: "fallback",
			usage: `
              fallback specifies whether the inverse problem should be solved on
              the mean-radius sphere when the ellipsoidal solution does not
              converge, as happens for nearly antipodal points.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{inverseCmd.Flags()},
		},
		{
			name: "resolution",
			usage: `
              resolution is the largest allowed distance in metres between the
              output path and the true geodesic.`,
			defaultVal: 1000.0,
			flagsets:   []*pflag.FlagSet{pathCmd.Flags()},
		},
		{
			name: "crs",
			usage: `
              crs is the reference system the path is written in. It can be
              a built-in name, a catalog entry, a UTM zone such as UTM31N or a
              proj4 or WKT definition. If it is set, its ellipsoid is used
              instead of --ellipsoid.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{pathCmd.Flags()},
		},
		{
			name: "source",
			usage: `
              source is the reference system of the input coordinates.`,
			shorthand:  "s",
			defaultVal: "WGS84",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
		{
			name: "target",
			usage: `
              target is the reference system of the output coordinates.`,
			shorthand:  "t",
			defaultVal: "WGS84",
			flagsets:   []*pflag.FlagSet{transformCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOREF")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(listCmd)
	Root.AddCommand(inverseCmd)
	Root.AddCommand(directCmd)
	Root.AddCommand(pathCmd)
	Root.AddCommand(transformCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("georef: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "georef",
	Short: "Geodetic calculations and coordinate transformations.",
	Long: `georef solves geodesic problems on the ellipsoid and transforms
coordinates between reference systems.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOREF_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of georef.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "georef v%s\n", georef.Version)
	},
	DisableAutoGenTag: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the named reference systems.",
	Long: `list prints the names of the built-in reference systems and of
those in the --catalog file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := LoadCatalogFile(Cfg.GetString("catalog"))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, n := range cat.Names() {
			if e, ok := cat.CRS[n]; ok && e.Description != "" {
				fmt.Fprintf(w, "%s\t%s\n", n, e.Description)
				continue
			}
			fmt.Fprintln(w, n)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var inverseCmd = &cobra.Command{
	Use:   "inverse",
	Short: "Find the distance and azimuths between two points.",
	Long: `inverse solves the inverse geodesic problem between (--lat1, --lon1)
and (--lat2, --lon2), printing the geodesic distance in metres and the
azimuths at both ends in degrees.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := calculator()
		if err != nil {
			return err
		}
		if err = setPoints(c, true); err != nil {
			return err
		}
		fallback, err := cast.ToBoolE(Cfg.Get("fallback"))
		if err != nil {
			return fmt.Errorf("georef: invalid fallback: %v", err)
		}
		return Inverse(cmd.OutOrStdout(), c, fallback)
	},
	DisableAutoGenTag: true,
}

var directCmd = &cobra.Command{
	Use:   "direct",
	Short: "Find the destination of a geodesic.",
	Long: `direct solves the direct geodesic problem: starting at (--lat1, --lon1)
and travelling --distance metres along --azimuth, it prints the destination
latitude and longitude and the azimuth of arrival.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := calculator()
		if err != nil {
			return err
		}
		if err = setPoints(c, false); err != nil {
			return err
		}
		az, err := getFloat("azimuth")
		if err != nil {
			return err
		}
		dist, err := getFloat("distance")
		if err != nil {
			return err
		}
		if err = c.SetDirection(az, dist); err != nil {
			return err
		}
		return Direct(cmd.OutOrStdout(), c)
	},
	DisableAutoGenTag: true,
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print a geodesic as a GeoJSON line string.",
	Long: `path approximates the geodesic from (--lat1, --lon1) to
(--lat2, --lon2) by a line string whose deviation from the true geodesic is
less than --resolution metres, and prints it as GeoJSON. Longitudes increase or
decrease continuously across the antimeridian. If --crs is set, the vertices
are written in that reference system.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var c *geodesic.Calculator
		if name := Cfg.GetString("crs"); name != "" {
			cat, err := LoadCatalogFile(Cfg.GetString("catalog"))
			if err != nil {
				return err
			}
			r, err := cat.Lookup(name)
			if err != nil {
				return err
			}
			c, err = geodesic.NewCalculatorForCRS(r, operation.NewFactory(nil, operation.WithLogger(Log)))
			if err != nil {
				return err
			}
		} else {
			var err error
			if c, err = calculator(); err != nil {
				return err
			}
		}
		if err := setPoints(c, true); err != nil {
			return err
		}
		res, err := getFloat("resolution")
		if err != nil {
			return err
		}
		return Path(cmd.OutOrStdout(), c, res)
	},
	DisableAutoGenTag: true,
}

var transformCmd = &cobra.Command{
	Use:   "transform [coordinates...]",
	Short: "Transform coordinates between reference systems.",
	Long: `transform converts each argument, a comma-separated coordinate tuple
such as "2.5,48.3", from the --source to the --target reference system and
prints the results one per line. Reference systems can be built-in names
(WGS84, EPSG:4326), entries in the --catalog file, UTM zones such as UTM31N,
or proj4 or WKT definitions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := LoadCatalogFile(Cfg.GetString("catalog"))
		if err != nil {
			return err
		}
		src, err := cat.Lookup(Cfg.GetString("source"))
		if err != nil {
			return err
		}
		dst, err := cat.Lookup(Cfg.GetString("target"))
		if err != nil {
			return err
		}
		ops := operation.NewFactory(nil, operation.WithLogger(Log))
		return Transform(context.Background(), cmd.OutOrStdout(), ops, src, dst, args)
	},
	DisableAutoGenTag: true,
}

// getFloat returns the named option as a number.
func getFloat(name string) (float64, error) {
	v, err := cast.ToFloat64E(Cfg.Get(name))
	if err != nil {
		return 0, fmt.Errorf("georef: invalid %s: %v", name, err)
	}
	return v, nil
}

// calculator creates a calculator on the --ellipsoid.
func calculator() (*geodesic.Calculator, error) {
	e, err := ellipsoidByName(Cfg.GetString("ellipsoid"))
	if err != nil {
		return nil, err
	}
	return geodesic.NewCalculator(e), nil
}

// setPoints sets the starting point of c and, if end is true, its
// destination point from the options.
func setPoints(c *geodesic.Calculator, end bool) error {
	var v [4]float64
	names := []string{"lat1", "lon1", "lat2", "lon2"}
	if !end {
		names = names[:2]
	}
	for i, n := range names {
		var err error
		if v[i], err = getFloat(n); err != nil {
			return err
		}
	}
	if err := c.SetStartGeographicPoint(v[0], v[1]); err != nil {
		return err
	}
	if end {
		return c.SetEndGeographicPoint(v[2], v[3])
	}
	return nil
}

// Inverse writes the distance and azimuths between the points of c to w.
// If fallback is true and the ellipsoidal solution fails, the spherical
// approximation is written instead.
func Inverse(w io.Writer, c *geodesic.Calculator, fallback bool) error {
	dist, err := c.GeodesicDistance()
	if err != nil {
		if !fallback || !errors.Is(err, georef.ErrGeodesic) {
			return err
		}
		Log.WithError(err).Warn("using spherical approximation")
		dist, az1, az2, err := c.InverseSpherical()
		if err != nil {
			return err
		}
		return writeInverse(w, dist, az1, az2)
	}
	az1, err := c.StartingAzimuth()
	if err != nil {
		return err
	}
	az2, err := c.EndingAzimuth()
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"ellipsoid": c.Ellipsoid().Name(),
		"distance":  dist,
	}).Debug("solved inverse geodesic problem")
	return writeInverse(w, dist, az1, az2)
}

func writeInverse(w io.Writer, dist, az1, az2 float64) error {
	_, err := fmt.Fprintf(w, "distance: %.3f m\nazimuth: %.9f\nend azimuth: %.9f\n", dist, az1, az2)
	return err
}

// Direct writes the destination and arrival azimuth of c to w.
func Direct(w io.Writer, c *geodesic.Calculator) error {
	lat, lon, err := c.EndPoint()
	if err != nil {
		return err
	}
	az2, err := c.EndingAzimuth()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "latitude: %.9f\nlongitude: %.9f\nend azimuth: %.9f\n", lat, lon, az2)
	return err
}

// Path writes the geodesic of c at the given resolution to w as a GeoJSON
// LineString.
func Path(w io.Writer, c *geodesic.Calculator, resolution float64) error {
	p, err := c.CreateGeodesicPath2D(resolution)
	if err != nil {
		return err
	}
	ls, err := p.LineString()
	if err != nil {
		return err
	}
	Log.WithField("vertices", len(ls)).Debug("created geodesic path")
	b, err := geojson.Encode(ls)
	if err != nil {
		return fmt.Errorf("georef: encoding path: %v", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Transform converts comma-separated coordinate tuples from src to dst and
// writes them to w, one per line.
func Transform(ctx context.Context, w io.Writer, ops *operation.Factory, src, dst crs.CRS, tuples []string) error {
	for _, t := range tuples {
		parts := strings.Split(t, ",")
		if len(parts) != src.Dimension() {
			return fmt.Errorf("georef: coordinate %q has %d values; %s needs %d",
				t, len(parts), src.Name(), src.Dimension())
		}
		in := make([]float64, len(parts))
		for i, p := range parts {
			v, err := cast.ToFloat64E(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("georef: invalid coordinate %q: %v", t, err)
			}
			in[i] = v
		}
		out, err := ops.TransformCoords(ctx, src, dst, in)
		if err != nil {
			return err
		}
		s := make([]string, len(out))
		for i, v := range out {
			s[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if _, err := fmt.Fprintln(w, strings.Join(s, ",")); err != nil {
			return err
		}
	}
	return nil
}
