/*
 * javadec - a Java class-file reader and bytecode disassembler
 */

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"javadec/src/archive"
	"javadec/src/classloader"
	"javadec/src/config"
	"javadec/src/decompiler"
	"javadec/src/disassembler"
	"javadec/src/trace"
)

const toolName = "javadec"

var (
	showConstantPool bool
	showDisassembly  bool
	showDecompiled   bool
	verbose          bool
	configPath       string
)

// cliError wraps a failure with the context that produced it so main can
// print the "<tool>: <context>: <error>" diagnostic line spec.md §6
// requires, without losing the wrapped error's own message.
type cliError struct {
	context string
	err     error
}

func (e *cliError) Error() string {
	return fmt.Sprintf("%s: %s: %s", toolName, e.context, e.err)
}

func (e *cliError) Unwrap() error { return e.err }

func fail(context string, err error) error {
	return &cliError{context: context, err: err}
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   toolName + " INPUT...",
		Short: "Reads, disassembles, and symbolically decompiles JVM class files",
		Long: "javadec parses .class and .jar files, prints their bytecode, and " +
			"builds a best-effort per-block decompilation of their methods.",
		Args: cobra.MinimumNArgs(1),
		RunE: runRoot,
	}

	root.Flags().BoolVar(&showConstantPool, "constant-pool", false, "print the resolved constant pool")
	root.Flags().BoolVar(&showDisassembly, "disassembly", true, "print the decoded bytecode")
	root.Flags().BoolVar(&showDecompiled, "decompiled", true, "print the per-block decompilation")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable trace logging")
	root.Flags().StringVar(&configPath, "config", "", "path to a javadec.toml config file (defaults to the platform config dir)")

	return root
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading config", err)
	}
	applyFlagOverrides(cmd, cfg)
	trace.Verbose = cfg.Logging.Verbose

	for _, input := range args {
		if err := processInput(input, cfg); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// applyFlagOverrides lets command-line flags that were explicitly set
// win over whatever the config file says; unset flags defer to config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("constant-pool") {
		cfg.Output.ShowConstantPool = showConstantPool
	}
	if cmd.Flags().Changed("disassembly") {
		cfg.Output.ShowDisassembly = showDisassembly
	}
	if cmd.Flags().Changed("decompiled") {
		cfg.Output.ShowDecompiled = showDecompiled
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Logging.Verbose = verbose
	}
}

func processInput(path string, cfg *config.Config) error {
	if strings.HasSuffix(strings.ToLower(path), ".jar") {
		return processJar(path, cfg)
	}
	return processClassFile(path, cfg)
}

func processJar(path string, cfg *config.Config) error {
	jar, err := archive.NewJarFile(path)
	if err != nil {
		return fail(path, err)
	}
	defer jar.Close()

	if mainClass, err := jar.MainClass(); err == nil && mainClass != "" {
		trace.Trace(fmt.Sprintf("%s: main class is %s", path, mainClass))
	}

	for _, name := range jar.ClassNames() {
		data, ok, err := jar.ReadClass(name)
		if err != nil {
			return fail(path+"!"+name, err)
		}
		if !ok {
			continue
		}
		if err := processClassBytes(path+"!"+name, data, cfg); err != nil {
			return err
		}
	}
	return nil
}

func processClassFile(path string, cfg *config.Config) error {
	src, closer, err := classloader.NewMappedReader(path)
	if err != nil {
		return fail(path, err)
	}
	defer closer.Close()

	cf, err := classloader.ReadClassFile(src)
	if err != nil {
		return fail(path, err)
	}
	return render(path, cf, cfg)
}

func processClassBytes(context string, data []byte, cfg *config.Config) error {
	cf, err := classloader.ReadClassFile(classloader.NewSliceSource(data))
	if err != nil {
		return fail(context, err)
	}
	return render(context, cf, cfg)
}

func render(context string, cf *classloader.ClassFile, cfg *config.Config) error {
	className, err := classNameOf(cf)
	if err != nil {
		return fail(context, err)
	}
	fmt.Printf("// %s (%s)\n", context, className)

	if cfg.Output.ShowConstantPool {
		renderConstantPool(cf)
	}

	for _, method := range cf.Methods {
		if err := renderMethod(context, cf, method, cfg); err != nil {
			return err
		}
	}
	return nil
}

func classNameOf(cf *classloader.ClassFile) (string, error) {
	class, err := cf.Pool.GetClass(cf.ThisClass)
	if err != nil {
		return "", err
	}
	return class.Name, nil
}

func renderConstantPool(cf *classloader.ClassFile) {
	fmt.Printf("  constant pool (%d entries):\n", cf.Pool.Len())
	for i := 1; i <= int(cf.Pool.Count()); i++ {
		if entry, err := cf.Pool.GetEntry(uint16(i)); err == nil {
			fmt.Printf("    #%d = %#v\n", i, entry)
		}
	}
}

func renderMethod(context string, cf *classloader.ClassFile, method classloader.MemberInfo, cfg *config.Config) error {
	name, err := cf.Pool.GetUtf8(method.NameIndex)
	if err != nil {
		return fail(context, err)
	}

	code := methodCode(method)
	if code == nil {
		return nil
	}

	instrs, err := disassembler.Disassemble(code.Code)
	if err != nil {
		return fail(fmt.Sprintf("%s#%s", context, name), err)
	}

	fmt.Printf("  method %s:\n", name)
	if cfg.Output.ShowDisassembly {
		for _, pi := range instrs {
			fmt.Printf("    %4d: %s\n", pi.PC, pi.Instruction.Op)
		}
	}

	if cfg.Output.ShowDecompiled {
		if err := renderDecompiled(context, name, instrs, cf.Pool, method.AccessFlags, cfg); err != nil {
			return err
		}
	}
	return nil
}

func methodCode(method classloader.MemberInfo) *classloader.CodeAttribute {
	for _, attr := range method.Attributes {
		if attr.Code != nil {
			return attr.Code
		}
	}
	return nil
}

func renderDecompiled(context, methodName string, instrs []disassembler.PositionedInstruction,
	pool *classloader.ConstantPool, accessFlags uint16, cfg *config.Config) error {

	blocks, err := decompiler.BuildCFG(instrs)
	if err != nil {
		errContext := fmt.Sprintf("%s#%s", context, methodName)
		if cfg.Decompiler.StopOnFirstError {
			return fail(errContext, err)
		}
		trace.Warning(fmt.Sprintf("%s: %s", errContext, err))
		return nil
	}

	pcs := make([]int, 0, len(blocks))
	for pc := range blocks {
		pcs = append(pcs, pc)
	}
	sort.Ints(pcs)

	limit := cfg.Decompiler.MaxBlocksPerMethod
	if limit > 0 && len(pcs) > limit {
		trace.Warning(fmt.Sprintf("%s#%s: %d blocks exceeds max_blocks_per_method %d, decompiling only the first %d",
			context, methodName, len(pcs), limit, limit))
		pcs = pcs[:limit]
	}

	isStatic := accessFlags&classloader.AccStatic != 0
	for _, pc := range pcs {
		block := blocks[pc]
		statements, err := decompiler.DecompileBlock(block, pool)
		if err != nil {
			errContext := fmt.Sprintf("%s#%s block@%d", context, methodName, pc)
			if cfg.Decompiler.StopOnFirstError {
				return fail(errContext, err)
			}
			trace.Warning(fmt.Sprintf("%s: %s", errContext, err))
			continue
		}
		fmt.Printf("    block@%d:\n", pc)
		for _, line := range strings.Split(decompiler.BlockToJava(statements, isStatic, identityClassResolver), "\n") {
			if line != "" {
				fmt.Printf("      %s\n", line)
			}
		}
	}
	return nil
}

func identityClassResolver(binaryName string) string {
	return strings.ReplaceAll(binaryName, "/", ".")
}
