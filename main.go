package main

import (
	"fmt"
	"os"

	"github.com/MixinNetwork/fraction/common"
	"github.com/MixinNetwork/fraction/config"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaultRPC := os.Getenv(config.EnvironmentRPCNode)
	if defaultRPC == "" {
		defaultRPC = fmt.Sprintf("http://127.0.0.1:%d", config.DefaultRPCPort)
	}

	app := cli.NewApp()
	app.Name = "fraction"
	app.Usage = "Exact rational arithmetic with named registers and a JSON RPC."
	app.Version = config.BuildVersion
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the configuration file path, the defaults are used if empty",
		},
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "the data directory, overrides the storage section of the configuration",
		},
		&cli.StringFlag{
			Name:    "node",
			Aliases: []string{"n"},
			Value:   defaultRPC,
			Usage:   "the RPC endpoint, and the default value is read from environment variable " + config.EnvironmentRPCNode,
		},
		&cli.IntFlag{
			Name:    "log",
			Aliases: []string{"l"},
			Usage:   "the log level, overrides the logger section of the configuration",
		},
	}
	app.Before = setupCmd
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		{
			Name:   "add",
			Usage:  "Add two fractions",
			Action: binaryCmd(func(a, b common.Rational) (interface{}, error) { return a.Add(b) }),
			Flags:  binaryFlags(),
		},
		{
			Name:   "sub",
			Usage:  "Subtract the other fraction from the fraction",
			Action: binaryCmd(func(a, b common.Rational) (interface{}, error) { return a.Sub(b) }),
			Flags:  binaryFlags(),
		},
		{
			Name:   "mul",
			Usage:  "Multiply two fractions",
			Action: binaryCmd(func(a, b common.Rational) (interface{}, error) { return a.Mul(b) }),
			Flags:  binaryFlags(),
		},
		{
			Name:   "div",
			Usage:  "Divide the fraction by the other fraction",
			Action: binaryCmd(func(a, b common.Rational) (interface{}, error) { return a.Div(b) }),
			Flags:  binaryFlags(),
		},
		{
			Name:   "compare",
			Usage:  "Compare two fractions and print -1, 0 or 1",
			Action: binaryCmd(func(a, b common.Rational) (interface{}, error) { return a.Cmp(b), nil }),
			Flags:  binaryFlags(),
		},
		{
			Name:   "neg",
			Usage:  "Negate a fraction",
			Action: unaryCmd(func(a common.Rational) (interface{}, error) { return a.Neg(), nil }),
			Flags:  fractionFlags("num", "den"),
		},
		{
			Name:   "reciprocal",
			Usage:  "Invert a fraction",
			Action: unaryCmd(func(a common.Rational) (interface{}, error) { return a.Reciprocal() }),
			Flags:  fractionFlags("num", "den"),
		},
		{
			Name:   "integer",
			Usage:  "Print the integer value of a fraction",
			Action: unaryCmd(func(a common.Rational) (interface{}, error) { return a.Int64() }),
			Flags:  fractionFlags("num", "den"),
		},
		{
			Name:   "power",
			Usage:  "Raise a fraction to a non negative power",
			Action: powerCmd,
			Flags: append(fractionFlags("num", "den"), &cli.IntFlag{
				Name:  "time",
				Usage: "the exponent",
			}),
		},
		{
			Name:   "fibonacci",
			Usage:  "Compute Fibonacci numbers with the matrix power",
			Action: fibonacciCmd,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "n",
					Value: 1,
					Usage: "the index of the Fibonacci number, starting from 1",
				},
				&cli.BoolFlag{
					Name:  "prefix",
					Usage: "print all the prefix products up to n",
				},
			},
		},
		{
			Name:   "set",
			Usage:  "Write a fraction to a named register",
			Action: setRegisterCmd,
			Flags: append(fractionFlags("num", "den"), &cli.StringFlag{
				Name:  "name",
				Usage: "the register name",
			}),
		},
		{
			Name:   "get",
			Usage:  "Read a named register",
			Action: getRegisterCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "the register name",
				},
			},
		},
		{
			Name:   "remove",
			Usage:  "Remove a named register",
			Action: removeRegisterCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "the register name",
				},
			},
		},
		{
			Name:   "list",
			Usage:  "List all the named registers",
			Action: listRegistersCmd,
		},
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Start the JSON RPC server",
			Action:  serveCmd,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "port",
					Usage: "the RPC port, overrides the rpc section of the configuration",
				},
			},
		},
		{
			Name:   "call",
			Usage:  "Call a method on the RPC node",
			Action: callCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "method",
					Usage: "the RPC method",
				},
				&cli.StringFlag{
					Name:  "params",
					Value: "[]",
					Usage: "the RPC params as a JSON array",
				},
			},
		},
	}
	return app
}

func binaryFlags() []cli.Flag {
	return append(fractionFlags("num", "den"), fractionFlags("onum", "oden")...)
}

func fractionFlags(num, den string) []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:  num,
			Usage: "the numerator",
		},
		&cli.Int64Flag{
			Name:  den,
			Value: 1,
			Usage: "the denominator",
		},
	}
}
