package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/keel3d/engine/internal/config"
	"github.com/keel3d/engine/internal/core/event"
	"github.com/keel3d/engine/internal/core/pool"
	"github.com/keel3d/engine/internal/editor/command"
	"github.com/keel3d/engine/internal/logging"
	"github.com/keel3d/engine/internal/resource"
	"github.com/keel3d/engine/internal/scene"
	"github.com/keel3d/engine/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printBanner(name string) {
	fmt.Println()
	fmt.Printf("  \033[36;1m%s\033[0m — scene editor shell\n", name)
	fmt.Println("  type 'help' for commands")
	fmt.Println()
}

func run() error {
	// 1. Load config
	cfgPath := "config/editor.toml"
	if p := os.Getenv("KEEL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	// 2. Init the log facility
	log, err := logging.New(logging.Options{
		FilePath:  cfg.Logging.File,
		Format:    cfg.Logging.Format,
		Verbosity: parseVerbosity(cfg.Logging.Level),
	})
	if err != nil {
		return fmt.Errorf("init log: %w", err)
	}
	defer log.Close()

	printBanner(cfg.Editor.Name)

	// 3. Scripting engine
	engine, err := scripting.NewEngine(cfg.Paths.Scripts, log.Zap())
	if err != nil {
		return fmt.Errorf("scripting engine: %w", err)
	}
	defer engine.Close()

	// 4. Resource manager, empty scene, command history
	resources := resource.NewManager(cfg.Paths.Assets, log)
	ctx := &command.Context{
		Scene:         scene.NewScene(),
		Serialization: engine.SerializationContext(),
		Resources:     resources,
		Bus:           event.NewBus(),
		Log:           log,
	}
	stack := command.NewStack(cfg.History.Depth)

	event.Subscribe(ctx.Bus, func(e command.Executed) {
		log.Info(fmt.Sprintf("executed: %s", e.Name))
	})
	event.Subscribe(ctx.Bus, func(e command.Undone) {
		log.Info(fmt.Sprintf("undone: %s", e.Name))
	})

	// 5. Shell loop
	sh := &shell{ctx: ctx, stack: stack, engine: engine, log: log}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("keel> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := sh.dispatch(strings.Fields(line)); err != nil {
			fmt.Printf("  error: %v\n", err)
		}
	}
	stack.Clear(ctx)
	return scanner.Err()
}

func parseVerbosity(level string) logging.MessageKind {
	switch level {
	case "warn", "warning":
		return logging.KindWarning
	case "error":
		return logging.KindError
	default:
		return logging.KindInfo
	}
}

type shell struct {
	ctx    *command.Context
	stack  *command.Stack
	engine *scripting.Engine
	log    *logging.Log
}

func (s *shell) dispatch(args []string) error {
	switch args[0] {
	case "help":
		s.help()
		return nil
	case "tree":
		s.printTree(s.ctx.Scene.Graph.Root(), 0)
		return nil
	case "add":
		return s.add(args[1:])
	case "delete":
		return s.delete(args[1:])
	case "link":
		return s.link(args[1:])
	case "move":
		return s.move(args[1:])
	case "rename":
		return s.rename(args[1:])
	case "visible":
		return s.visible(args[1:])
	case "script":
		return s.script(args[1:])
	case "model":
		return s.model(args[1:])
	case "undo":
		if !s.stack.Undo(s.ctx) {
			fmt.Println("  nothing to undo")
		}
		return nil
	case "redo":
		if !s.stack.Redo(s.ctx) {
			fmt.Println("  nothing to redo")
		}
		return nil
	case "history":
		s.history()
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (s *shell) help() {
	fmt.Print(`  tree                      print the scene graph
  add <name> [parent]       add a node (default parent: root)
  delete <name>             delete a node and its subtree
  link <child> <parent>     re-parent a node
  move <name> <x> <y> <z>   set a node's local position
  rename <old> <new>        rename a node
  visible <name> on|off     toggle visibility
  script <name> <class>     attach a script instance
  model <path>              instantiate a model asset under the root
  undo / redo / history     walk the edit history
  quit                      leave the editor
`)
}

func (s *shell) resolve(name string) (pool.Handle, error) {
	g := s.ctx.Scene.Graph
	h := g.FindByName(g.Root(), name)
	if !g.Alive(h) {
		return h, fmt.Errorf("no node named %q", name)
	}
	return h, nil
}

func (s *shell) printTree(h pool.Handle, depth int) {
	g := s.ctx.Scene.Graph
	n := g.MustNode(h)
	label := n.Name()
	if h == g.Root() {
		label = "(root)"
	}
	fmt.Printf("  %s%s\n", strings.Repeat("  ", depth), label)
	for _, child := range n.Children() {
		s.printTree(child, depth+1)
	}
}

func (s *shell) add(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <name> [parent]")
	}
	parent := s.ctx.Scene.Graph.Root()
	if len(args) > 1 {
		h, err := s.resolve(args[1])
		if err != nil {
			return err
		}
		parent = h
	}
	s.stack.Do(s.ctx, command.NewAddNodeCommand(scene.NewNode(args[0]), parent))
	return nil
}

func (s *shell) delete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <name>")
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if h == s.ctx.Scene.Graph.Root() {
		return fmt.Errorf("cannot delete the root")
	}
	s.stack.Do(s.ctx, command.NewDeleteSubGraphCommand(h))
	return nil
}

func (s *shell) link(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: link <child> <parent>")
	}
	child, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	parent, err := s.resolve(args[1])
	if err != nil {
		return err
	}
	s.stack.Do(s.ctx, command.NewLinkNodesCommand(child, parent))
	return nil
}

func (s *shell) move(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: move <name> <x> <y> <z>")
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	var v mgl32.Vec3
	for i, raw := range args[1:] {
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("bad coordinate %q", raw)
		}
		v[i] = float32(f)
	}
	old := s.ctx.Scene.Graph.MustNode(h).LocalTransform().Position()
	s.stack.Do(s.ctx, command.NewMoveNodeCommand(h, old, v))
	return nil
}

func (s *shell) rename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rename <old> <new>")
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	s.stack.Do(s.ctx, command.NewSetNameCommand(h, args[0], args[1]))
	return nil
}

func (s *shell) visible(args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return fmt.Errorf("usage: visible <name> on|off")
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	old := s.ctx.Scene.Graph.MustNode(h).Visibility()
	s.stack.Do(s.ctx, command.NewSetVisibleCommand(h, old, args[1] == "on"))
	return nil
}

func (s *shell) script(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: script <name> <class>")
	}
	h, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	script, err := s.engine.NewScript(args[1], nil)
	if err != nil {
		return err
	}
	s.stack.Do(s.ctx, command.NewSetScriptCommand(h, script))
	return nil
}

func (s *shell) model(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: model <path>")
	}
	model, err := s.ctx.Resources.LoadModel(args[0])
	if err != nil {
		return err
	}
	root, anims, err := model.Instantiate(s.ctx.Scene)
	if err != nil {
		return err
	}
	sg, reserved := command.DetachModelInstance(s.ctx.Scene, root, anims)
	s.stack.Do(s.ctx, command.NewAddModelCommand(sg, reserved))
	return nil
}

func (s *shell) history() {
	if s.stack.CanUndo() {
		fmt.Printf("  undo: %s\n", s.stack.UndoName(s.ctx))
	}
	if s.stack.CanRedo() {
		fmt.Printf("  redo: %s\n", s.stack.RedoName(s.ctx))
	}
	fmt.Printf("  %d command(s) held\n", s.stack.Len())
}
