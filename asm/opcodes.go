package asm

// Opcode is the base encoding and operand count of a mnemonic.
type Opcode struct {
	Code byte
	Args int
}

// ArgsAny disables the operand count check.
const ArgsAny = -1

// Undefined is returned for unknown mnemonics.
var Undefined = Opcode{Code: 0, Args: ArgsAny}

// Opcodes of the 8080 instruction set and the assembler pseudo operations.
var Opcodes = map[string]Opcode{
	// Pseudo operations
	"DB":    {0x00, ArgsAny},
	"DW":    {0x00, ArgsAny},
	"DS":    {0x00, 1},
	"ORG":   {0x00, 1},
	"EQU":   {0x00, 1},
	"SET":   {0x00, 1},
	"END":   {0x00, 0},
	"IF":    {0x00, 1},
	"ENDIF": {0x00, 0},

	// Data transfer
	"MOV":  {0b01_000_000, 2},
	"MVI":  {0b00_000_110, 2},
	"LXI":  {0b00_00_0001, 2},
	"LDA":  {0b00_111_010, 1},
	"STA":  {0b00_110_010, 1},
	"LHLD": {0b00_101_010, 1},
	"SHLD": {0b00_100_010, 1},
	"LDAX": {0b00_00_1010, 1},
	"STAX": {0b00_00_0010, 1},
	"XCHG": {0b11_101_011, 0},

	// Arithmetic
	"ADD": {0b10_000_000, 1},
	"ADI": {0b11_000_110, 1},
	"ADC": {0b10_001_000, 1},
	"ACI": {0b11_001_110, 1},
	"SUB": {0b10_010_000, 1},
	"SUI": {0b11_010_110, 1},
	"SBB": {0b10_011_000, 1},
	"SBI": {0b11_011_110, 1},
	"INR": {0b00_000_100, 1},
	"DCR": {0b00_000_101, 1},
	"INX": {0b00_00_0011, 1},
	"DCX": {0b00_00_1011, 1},
	"DAD": {0b00_00_1001, 1},
	"DAA": {0b00_100_111, 0},

	// Logical
	"ANA": {0b10_100_000, 1},
	"ANI": {0b11_100_110, 1},
	"XRA": {0b10_101_000, 1},
	"XRI": {0b11_101_110, 1},
	"ORA": {0b10_110_000, 1},
	"ORI": {0b11_110_110, 1},
	"CMP": {0b10_111_000, 1},
	"CPI": {0b11_111_110, 1},
	"RLC": {0b00_000_111, 0},
	"RRC": {0b00_001_111, 0},
	"RAL": {0b00_010_111, 0},
	"RAR": {0b00_011_111, 0},
	"CMA": {0b00_101_111, 0},
	"CMC": {0b00_111_111, 0},
	"STC": {0b00_110_111, 0},

	// Branch
	"JMP":  {0b11_000_011, 1},
	"JNZ":  {0b11_000_010, 1},
	"JZ":   {0b11_001_010, 1},
	"JNC":  {0b11_010_010, 1},
	"JC":   {0b11_011_010, 1},
	"JPO":  {0b11_100_010, 1},
	"JPE":  {0b11_101_010, 1},
	"JP":   {0b11_110_010, 1},
	"JM":   {0b11_111_010, 1},
	"CALL": {0b11_001_101, 1},
	"CNZ":  {0b11_000_100, 1},
	"CZ":   {0b11_001_100, 1},
	"CNC":  {0b11_010_100, 1},
	"CC":   {0b11_011_100, 1},
	"CPO":  {0b11_100_100, 1},
	"CPE":  {0b11_101_100, 1},
	"CP":   {0b11_110_100, 1},
	"CM":   {0b11_111_100, 1},
	"RET":  {0b11_001_001, 0},
	"RNZ":  {0b11_000_000, 0},
	"RZ":   {0b11_001_000, 0},
	"RNC":  {0b11_010_000, 0},
	"RC":   {0b11_011_000, 0},
	"RPO":  {0b11_100_000, 0},
	"RPE":  {0b11_101_000, 0},
	"RP":   {0b11_110_000, 0},
	"RM":   {0b11_111_000, 0},
	"RST":  {0b11_000_111, 1},
	"PCHL": {0b11_101_001, 0},

	// Stack, IO and machine control
	"PUSH": {0b11_00_0101, 1},
	"POP":  {0b11_00_0001, 1},
	"XTHL": {0b11_100_011, 0},
	"SPHL": {0b11_111_001, 0},
	"IN":   {0b11_011_011, 1},
	"OUT":  {0b11_010_011, 1},
	"EI":   {0b11_111_011, 0},
	"DI":   {0b11_110_011, 0},
	"HLT":  {0b01_110_110, 0},
	"NOP":  {0b00_000_000, 0},
}

// Lookup returns the opcode of a mnemonic, or Undefined.
func Lookup(mnemonic string) (op Opcode) {
	op, ok := Opcodes[mnemonic]
	if !ok {
		op = Undefined
	}
	return
}
