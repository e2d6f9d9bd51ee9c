package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%v", MEMORY_SIZE), asm.Equate["MEMORY_SIZE"])
	assert.Equal("0xff", asm.Equate["REFLECT_MASK"])
	assert.Equal("0x80000", asm.Equate["LOAD_LIMIT"])
	assert.Equal("0x8000", asm.Equate["READ_LIMIT"])
	assert.Equal("0x1000000", asm.Equate["WRITE_LIMIT"])
	assert.Equal("0x1000000", asm.Equate["REFLECT_LIMIT"])
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"# whole line comment",
		"LOAD 6 20",
		"",
		"   write 3 106   # trailing comment",
		"Read 3 200",
		"REV 12 326",
		"reflect 0 0x10",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	expected := []Line{
		{2, 0, []string{"LOAD", "6", "20"}, []int64{6, 20}, MakeCodeLoad(20)},
		{4, 3, []string{"write", "3", "106"}, []int64{3, 106}, MakeCodeWrite(106)},
		{5, 7, []string{"Read", "3", "200"}, []int64{3, 200}, MakeCodeRead(200)},
		{6, 10, []string{"REV", "12", "326"}, []int64{12, 326}, MakeCodeReflect(326)},
		{7, 14, []string{"reflect", "0", "0x10"}, []int64{0, 16}, MakeCodeReflect(16)},
	}

	assert.Equal(expected, prog.Lines)

	image, err := prog.Binary()
	assert.NoError(err)
	assert.Equal([]byte{
		0x46, 0x01, 0x00,
		0xa0, 0x06, 0x00, 0x00,
		0x83, 0x0c, 0x00,
		0x6d, 0x14, 0x00, 0x00,
		0x0d, 0x01, 0x00, 0x00,
	}, image)
}

func TestAssemblerVectors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source   string
		expected []byte
	}){
		{"LOAD 6 20", []byte{0x46, 0x01, 0x00}},
		{"READ 3 200", []byte{0x83, 0x0c, 0x00}},
		{"WRITE 3 106", []byte{0xa0, 0x06, 0x00, 0x00}},
		{"REV 12 326", []byte{0x6d, 0x14, 0x00, 0x00}},
		{"REFLECT 12 326", []byte{0x6d, 0x14, 0x00, 0x00}},
	}

	for _, entry := range table {
		asm := &Assembler{}
		image, _, err := asm.Assemble(strings.NewReader(entry.source))
		assert.NoError(err, entry.source)
		assert.Equal(entry.expected, image, entry.source)
	}
}

func TestAssemblerLog(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"LOAD 6 20",
		"WRITE 0 5",
		"LOAD 6 0",
		"rev 13 6",
		"WRITE 0 7",
	}

	image, log, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(3+4+3+4+4, len(image))

	assert.Equal(Log{
		"LOAD":    {"LOAD [6, 20]", "LOAD [6, 0]"},
		"WRITE":   {"WRITE [0, 5]", "WRITE [0, 7]"},
		"REFLECT": {"REFLECT [13, 6]"},
	}, log)
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "100")

	program := []string{
		".equ SLOT 5",
		"LOAD 0 $(BASE + 1)",
		"WRITE 0 SLOT",
		"WRITE 0 $(MEMORY_SIZE - 1)",
		"LOAD LINENO $(LOAD_LIMIT - 1)",
		"READ 0 $(SLOT * 2)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	codes := []Code{}
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}

	assert.Equal([]Code{
		MakeCodeLoad(101),
		MakeCodeWrite(5),
		MakeCodeWrite(MEMORY_SIZE - 1),
		MakeCodeLoad(1<<19 - 1),
		MakeCodeRead(10),
	}, codes)
	assert.Equal([]int64{5, 1<<19 - 1}, prog.Lines[3].Args)

	// Equates do not persist between parses, predefines do.
	prog, err = asm.Parse(strings.NewReader("WRITE 0 BASE"))
	assert.NoError(err)
	assert.Equal(MakeCodeWrite(100), prog.Lines[0].Code)

	_, err = asm.Parse(strings.NewReader("WRITE 0 SLOT"))
	assert.True(errors.Is(err, ErrParseNumber("SLOT")))
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	table := [](struct {
		prog string
		line int
		err  error
	}){
		{"INVALID 1 2 3", 1, ErrUnknownInstruction},
		{"LOAD 6 20\nJUMP 1 2", 2, ErrUnknownInstruction},
		{"LOAD 1 2 3", 1, ErrArityMismatch},
		{"LOAD 1", 1, ErrArityMismatch},
		{"LOAD", 1, ErrArityMismatch},
		{"# comment\n\nWRITE 1 2 # 3\nREAD 1", 4, ErrArityMismatch},
		{"LOAD 6 524288", 1, ErrOperandOutOfRange},
		{"READ 3 32768", 1, ErrOperandOutOfRange},
		{"WRITE 0 16777216", 1, ErrOperandOutOfRange},
		{"REFLECT 0 16777216", 1, ErrOperandOutOfRange},
		{"LOAD 6 -1", 1, ErrOperandOutOfRange},
		{"LOAD six 20", 1, ErrParseNumber("six")},
		{"LOAD 6 twenty", 1, ErrParseNumber("twenty")},
		{"LOAD 6 $(\"aaa\")", 1, ErrParseExpression("\"aaa\"")},
		{"LOAD 6 $(more(\"aaa\"))", 1, ErrParseExpression("more(\"aaa\")")},
		{"LOAD 6 $(0x10000000000000000)", 1, ErrParseExpression("0x10000000000000000")},
		{".equ", 1, ErrEquateSyntax},
		{".equ A", 1, ErrEquateSyntax},
		{".equ A 1\n.equ A 2\n", 2, ErrEquateDuplicate},
		{".equ MEMORY_SIZE 1\n", 1, ErrEquateDuplicate},
	}

	for _, entry := range table {
		prog, err := asm.Parse(strings.NewReader(entry.prog))
		assert.Nil(prog, entry.prog)
		var se *ErrSyntax
		if assert.True(errors.As(err, &se), entry.prog) {
			assert.Equal(entry.line, se.LineNo, entry.prog)
		}
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.prog, err)
	}
}

func TestAssemblerErrorDetail(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, _, err := asm.Assemble(strings.NewReader("LOAD 6 20\nREAD 3 40000 # too far\n"))
	var eo *ErrOperand
	if assert.True(errors.As(err, &eo)) {
		assert.Equal(OP_READ, eo.Op)
		assert.Equal(int64(40000), eo.Value)
	}
	var se *ErrSyntax
	if assert.True(errors.As(err, &se)) {
		assert.Equal(2, se.LineNo)
		assert.Equal("READ 3 40000", se.Line)
	}

	_, _, err = asm.Assemble(strings.NewReader("load 1 2 3"))
	var ea *ErrArity
	if assert.True(errors.As(err, &ea)) {
		assert.Equal("LOAD", ea.Mnemonic)
		assert.Equal(2, ea.Want)
		assert.Equal(3, ea.Got)
	}

	_, _, err = asm.Assemble(strings.NewReader("jump 1 2"))
	assert.True(errors.Is(err, ErrMnemonic("JUMP")))
}
