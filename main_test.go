package main

import (
	"bytes"
	"testing"

	"github.com/MixinNetwork/fraction/common"
	"github.com/stretchr/testify/require"
)

func runApp(args ...string) (string, error) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"fraction"}, args...))
	return buf.String(), err
}

func TestArithmeticCommands(t *testing.T) {
	require := require.New(t)

	out, err := runApp("add", "--num", "1", "--den", "2", "--onum", "1", "--oden", "3")
	require.Nil(err)
	require.Equal("5/6\n", out)

	out, err = runApp("sub", "--num", "1", "--den", "2", "--onum", "3", "--oden", "4")
	require.Nil(err)
	require.Equal("-1/4\n", out)

	out, err = runApp("mul", "--num=-2", "--den", "3", "--onum", "3", "--oden", "4")
	require.Nil(err)
	require.Equal("-1/2\n", out)

	out, err = runApp("compare", "--num", "1", "--den", "3", "--onum", "1", "--oden", "2")
	require.Nil(err)
	require.Equal("-1\n", out)

	out, err = runApp("power", "--num=-1", "--den", "2", "--time", "3")
	require.Nil(err)
	require.Equal("-1/8\n", out)

	out, err = runApp("integer", "--num", "6", "--den", "3")
	require.Nil(err)
	require.Equal("2\n", out)

	_, err = runApp("div", "--num", "1", "--onum", "0")
	require.ErrorIs(err, common.ErrDivisionByZero)
	_, err = runApp("reciprocal", "--num", "0")
	require.ErrorIs(err, common.ErrDivisionByZero)
	_, err = runApp("neg", "--num", "1", "--den", "0")
	require.ErrorIs(err, common.ErrDivisionByZero)
	_, err = runApp("integer", "--num", "1", "--den", "2")
	require.ErrorIs(err, common.ErrNotInteger)
	_, err = runApp("power", "--num", "2", "--time=-1")
	require.ErrorIs(err, common.ErrInvalidArgument)
}

func TestFibonacciCommand(t *testing.T) {
	require := require.New(t)

	out, err := runApp("fibonacci", "--n", "10")
	require.Nil(err)
	require.Equal("55\n", out)

	out, err = runApp("fibonacci", "--n", "5", "--prefix")
	require.Nil(err)
	require.Equal("2\t1\n3\t2\n4\t3\n5\t5\n6\t8\n", out)
}

func TestRegisterCommands(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	out, err := runApp("--dir", dir, "set", "--name", "half", "--num", "2", "--den", "4")
	require.Nil(err)
	require.Equal("half\t1/2\n", out)
	_, err = runApp("--dir", dir, "set", "--name", "third", "--num=-1", "--den", "3")
	require.Nil(err)

	out, err = runApp("--dir", dir, "get", "--name", "half")
	require.Nil(err)
	require.Equal("half\t1/2\n", out)

	out, err = runApp("--dir", dir, "list")
	require.Nil(err)
	require.Equal("half\t1/2\nthird\t-1/3\n", out)

	_, err = runApp("--dir", dir, "remove", "--name", "half")
	require.Nil(err)
	_, err = runApp("--dir", dir, "get", "--name", "half")
	require.ErrorContains(err, "not found")
}
