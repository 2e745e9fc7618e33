package asciimath

type kind int

const (
	kConst kind = iota
	kUnary
	kBinary
	kLeft
	kRight
	kSub
	kSup
	kDiv
	kSep
	kText
	kRaw
)

type symbol struct {
	kind kind
	tex  string
}

func constants(tex map[string]string) map[string]symbol {
	out := make(map[string]symbol, len(tex))
	for k, v := range tex {
		out[k] = symbol{kind: kConst, tex: v}
	}
	return out
}

var greek = []string{
	"alpha", "beta", "gamma", "Gamma", "delta", "Delta", "epsilon", "varepsilon",
	"zeta", "eta", "theta", "Theta", "vartheta", "iota", "kappa", "lambda", "Lambda",
	"mu", "nu", "xi", "Xi", "pi", "Pi", "rho", "sigma", "Sigma", "tau", "upsilon",
	"phi", "Phi", "varphi", "chi", "psi", "Psi", "omega", "Omega",
}

var operators = map[string]string{
	"+": "+", "-": "-", "*": `\cdot`, "**": `\ast`, "***": `\star`, "//": "/",
	`\\`: `\backslash`, "setminus": `\setminus`, "xx": `\times`, "|><": `\ltimes`,
	"><|": `\rtimes`, "|><|": `\bowtie`, "-:": `\div`, "divide": `\div`, "@": `\circ`,
	"o+": `\oplus`, "ox": `\otimes`, "o.": `\odot`, "sum": `\sum`, "prod": `\prod`,
	"^^": `\wedge`, "^^^": `\bigwedge`, "vv": `\vee`, "vvv": `\bigvee`,
	"nn": `\cap`, "nnn": `\bigcap`, "uu": `\cup`, "uuu": `\bigcup`,
}

var relations = map[string]string{
	"=": "=", "!=": `\ne`, ":=": ":=", "lt": "<", "<": "<", "gt": ">", ">": ">",
	"<=": `\le`, "le": `\le`, ">=": `\ge`, "ge": `\ge`, "-<": `\prec`, ">-": `\succ`,
	"-<=": `\preceq`, ">-=": `\succeq`, "in": `\in`, "!in": `\notin`,
	"sub": `\subset`, "sup": `\supset`, "sube": `\subseteq`, "supe": `\supseteq`,
	"-=": `\equiv`, "~=": `\cong`, "~~": `\approx`, "~": `\sim`, "prop": `\propto`,
}

var logic = map[string]string{
	"and": `\text{and}`, "or": `\text{or}`, "not": `\neg`, "=>": `\implies`,
	"if": `\text{if}`, "<=>": `\iff`, "AA": `\forall`, "EE": `\exists`,
	"_|_": `\bot`, "TT": `\top`, "|--": `\vdash`, "|==": `\models`,
}

var misc = map[string]string{
	"int": `\int`, "oint": `\oint`, "del": `\partial`, "grad": `\nabla`,
	"+-": `\pm`, "-+": `\mp`, "O/": `\emptyset`, "oo": `\infty`, "aleph": `\aleph`,
	"/_": `\angle`, ":.": `\therefore`, ":'": `\because`, "...": `\ldots`,
	"cdots": `\cdots`, "vdots": `\vdots`, "ddots": `\ddots`, "diamond": `\diamond`,
	"square": `\square`, "|__": `\lfloor`, "__|": `\rfloor`, "|~": `\lceil`,
	"~|": `\rceil`, "CC": `\mathbb{C}`, "NN": `\mathbb{N}`, "QQ": `\mathbb{Q}`,
	"RR": `\mathbb{R}`, "ZZ": `\mathbb{Z}`, "quad": `\quad`, "qquad": `\qquad`,
	"|": "|", "'": "'", "!": "!", "%": `\%`, "&": `\&`, "#": `\#`, "$": `\$`,
	`\ `: `\ `,
}

var functions = map[string]string{
	"sin": `\sin`, "cos": `\cos`, "tan": `\tan`, "sec": `\sec`, "csc": `\csc`,
	"cot": `\cot`, "arcsin": `\arcsin`, "arccos": `\arccos`, "arctan": `\arctan`,
	"sinh": `\sinh`, "cosh": `\cosh`, "tanh": `\tanh`, "sech": `\operatorname{sech}`,
	"csch": `\operatorname{csch}`, "coth": `\coth`, "exp": `\exp`, "log": `\log`,
	"ln": `\ln`, "det": `\det`, "dim": `\dim`, "gcd": `\gcd`, "lcm": `\operatorname{lcm}`,
	"min": `\min`, "max": `\max`, "lim": `\lim`, "Lim": `\operatorname{Lim}`,
	"mod": `\operatorname{mod}`,
}

var arrows = map[string]string{
	"uarr": `\uparrow`, "darr": `\downarrow`, "rarr": `\rightarrow`, "->": `\to`,
	">->": `\rightarrowtail`, "->>": `\twoheadrightarrow`, "|->": `\mapsto`,
	"larr": `\leftarrow`, "harr": `\leftrightarrow`, "rArr": `\Rightarrow`,
	"lArr": `\Leftarrow`, "hArr": `\Leftrightarrow`,
}

var unary = map[string]string{
	"sqrt": `\sqrt`, "text": `\text`, "abs": "abs", "floor": "floor", "ceil": "ceil", "norm": "norm",
	"hat": `\hat`, "bar": `\overline`, "overline": `\overline`, "vec": `\vec`,
	"dot": `\dot`, "ddot": `\ddot`, "ul": `\underline`, "underline": `\underline`,
	"ubrace": `\underbrace`, "obrace": `\overbrace`, "tilde": `\tilde`,
	"bb": `\mathbf`, "bbb": `\mathbb`, "cc": `\mathcal`, "tt": `\mathtt`,
	"fr": `\mathfrak`, "sf": `\mathsf`,
}

var binary = map[string]string{
	"frac": `\frac`, "root": `\sqrt`, "stackrel": `\overset`, "overset": `\overset`,
	"underset": `\underset`, "color": `\color`,
}

var lefts = map[string]string{
	"(": "(", "[": "[", "{": `\{`, "(:": `\langle`, "<<": `\langle`, "{:": ".",
}

var rights = map[string]string{
	")": ")", "]": "]", "}": `\}`, ":)": `\rangle`, ">>": `\rangle`, ":}": ".",
}

// builtins is the default symbol table.
var builtins = func() map[string]symbol {
	table := map[string]symbol{}
	for _, g := range greek {
		table[g] = symbol{kind: kConst, tex: `\` + g}
	}
	for _, group := range []map[string]string{operators, relations, logic, misc, functions, arrows} {
		for k, v := range constants(group) {
			table[k] = v
		}
	}
	for k, v := range unary {
		table[k] = symbol{kind: kUnary, tex: v}
	}
	for k, v := range binary {
		table[k] = symbol{kind: kBinary, tex: v}
	}
	for k, v := range lefts {
		table[k] = symbol{kind: kLeft, tex: v}
	}
	for k, v := range rights {
		table[k] = symbol{kind: kRight, tex: v}
	}
	table["_"] = symbol{kind: kSub}
	table["^"] = symbol{kind: kSup}
	table["/"] = symbol{kind: kDiv}
	table[","] = symbol{kind: kSep, tex: ","}
	table[";"] = symbol{kind: kSep, tex: ";"}
	return table
}()
