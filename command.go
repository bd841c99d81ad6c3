package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/MixinNetwork/fraction/common"
	"github.com/MixinNetwork/fraction/config"
	"github.com/MixinNetwork/fraction/rpc"
	"github.com/MixinNetwork/fraction/storage"
	"github.com/urfave/cli/v2"
)

func setupCmd(c *cli.Context) error {
	custom := config.Default()
	if file := c.String("config"); file != "" {
		conf, err := config.Initialize(file)
		if err != nil {
			return err
		}
		custom = conf
	}
	if dir := c.String("dir"); dir != "" {
		custom.Storage.Dir = dir
	}
	if l := c.Int("log"); l > 0 {
		custom.Logger.Level = l
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	c.App.Metadata["config"] = custom
	return custom.Apply()
}

func customFromContext(c *cli.Context) *config.Custom {
	return c.App.Metadata["config"].(*config.Custom)
}

func binaryCmd(op func(a, b common.Rational) (interface{}, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := common.NewFraction(c.Int64("num"), c.Int64("den"))
		if err != nil {
			return err
		}
		b, err := common.NewFraction(c.Int64("onum"), c.Int64("oden"))
		if err != nil {
			return err
		}
		res, err := op(a, b)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, res)
		return nil
	}
}

func unaryCmd(op func(a common.Rational) (interface{}, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := common.NewFraction(c.Int64("num"), c.Int64("den"))
		if err != nil {
			return err
		}
		res, err := op(a)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, res)
		return nil
	}
}

func powerCmd(c *cli.Context) error {
	a, err := common.NewFraction(c.Int64("num"), c.Int64("den"))
	if err != nil {
		return err
	}
	p, err := a.Power(c.Int("time"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, p)
	return nil
}

func fibonacciCmd(c *cli.Context) error {
	n := c.Int("n")
	if !c.Bool("prefix") {
		f, err := common.Fibonacci(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, f)
		return nil
	}
	numbers, err := common.FibonacciPrefix(n)
	if err != nil {
		return err
	}
	for i, f := range numbers {
		fmt.Fprintf(c.App.Writer, "%d\t%d\n", i+2, f)
	}
	return nil
}

func setRegisterCmd(c *cli.Context) error {
	r, err := common.NewFraction(c.Int64("num"), c.Int64("den"))
	if err != nil {
		return err
	}
	store, err := storage.NewBadgerStore(customFromContext(c), customFromContext(c).Storage.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.WriteRational(c.String("name"), r)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s\t%s\n", c.String("name"), r)
	return nil
}

func getRegisterCmd(c *cli.Context) error {
	store, err := storage.NewBadgerStore(customFromContext(c), customFromContext(c).Storage.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	name := c.String("name")
	r, found, err := store.ReadRational(name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("register %s not found", name)
	}
	fmt.Fprintf(c.App.Writer, "%s\t%s\n", name, r)
	return nil
}

func removeRegisterCmd(c *cli.Context) error {
	store, err := storage.NewBadgerStore(customFromContext(c), customFromContext(c).Storage.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RemoveRational(c.String("name"))
}

func listRegistersCmd(c *cli.Context) error {
	store, err := storage.NewBadgerStore(customFromContext(c), customFromContext(c).Storage.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	registers, err := store.ListRationals()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(registers))
	for name := range registers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", name, registers[name])
	}
	return nil
}

func serveCmd(c *cli.Context) error {
	custom := customFromContext(c)
	if port := c.Int("port"); port > 0 {
		custom.RPC.Port = port
	}
	store, err := storage.NewBadgerStore(custom, custom.Storage.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	return rpc.StartHTTP(custom, store)
}

func callCmd(c *cli.Context) error {
	var params []interface{}
	dec := json.NewDecoder(strings.NewReader(c.String("params")))
	dec.UseNumber()
	err := dec.Decode(&params)
	if err != nil {
		return err
	}
	data, err := rpc.CallRPC(c.String("node"), c.String("method"), params)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}
