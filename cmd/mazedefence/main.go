package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/toejough/maze-defence/internal/driver"
	"github.com/toejough/maze-defence/internal/simcore"
	"github.com/toejough/maze-defence/internal/systems/builder"
	"github.com/toejough/maze-defence/internal/systems/spawning"
	"github.com/toejough/maze-defence/internal/waveconfig"
	"github.com/toejough/maze-defence/internal/world"
)

// CellSize is the presentation size, in pixels, of a single navigation
// cell. The window dimensions are derived from the configured grid so a
// bigger maze gets a bigger window rather than a cramped one.
const CellSize = 28

// globalSeed is the deterministic seed every RNG stream in the session
// ultimately branches from. The CLI surface has no --seed flag, so every
// run of a given configuration produces the same wave schedule.
const globalSeed uint64 = 0x6d617a65645f3032

var (
	tileColor      = color.RGBA{R: 80, G: 60, B: 40, A: 255}
	wallColor      = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	spawnColor     = color.RGBA{R: 200, G: 50, B: 50, A: 255}
	targetColor    = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	gridLineColor  = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	previewOK      = color.RGBA{R: 120, G: 220, B: 120, A: 140}
	previewBlocked = color.RGBA{R: 220, G: 80, B: 80, A: 140}
	laserColor     = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// bootConfig is the resolved, validated set of parameters the CLI surface
// accepts: grid size, wall thickness, cell density, bug step cadence, and
// an optional species/pressure table.
type bootConfig struct {
	columns       uint32
	rows          uint32
	wallThickness uint32
	cellsPerTile  uint32
	bugStepMs     uint32
	speciesConfig string
}

func parseFlags(args []string) (bootConfig, error) {
	fs := flag.NewFlagSet("mazedefence", flag.ContinueOnError)

	size := fs.String("size", "", "grid size as WxH, e.g. 20x15 (mutually exclusive with --width/--height)")
	width := fs.Uint("width", 20, "grid width in tiles")
	height := fs.Uint("height", 15, "grid height in tiles")
	wallThickness := fs.Uint("wall-thickness", uint(world.DefaultWallThickness), "perimeter wall thickness in cells")
	cellsPerTile := fs.Uint("cells-per-tile", 1, "navigation cells per tile edge (>=1)")
	bugStepMs := fs.Uint("bug-step-ms", 250, "milliseconds between bug hops (1-60000)")
	speciesConfigPath := fs.String("species-config", "", "path to a TOML species/patch/pressure table")

	if err := fs.Parse(args); err != nil {
		return bootConfig{}, err
	}

	columns, rows := uint32(*width), uint32(*height)
	if *size != "" {
		if *width != 20 || *height != 15 {
			return bootConfig{}, fmt.Errorf("--size cannot be combined with --width/--height")
		}
		parsedColumns, parsedRows, err := parseSize(*size)
		if err != nil {
			return bootConfig{}, err
		}
		columns, rows = parsedColumns, parsedRows
	}

	if columns == 0 || rows == 0 {
		return bootConfig{}, fmt.Errorf("grid dimensions must be positive, got %dx%d", columns, rows)
	}
	if *cellsPerTile == 0 {
		return bootConfig{}, fmt.Errorf("--cells-per-tile must be at least 1")
	}
	if *bugStepMs < 1 || *bugStepMs > 60000 {
		return bootConfig{}, fmt.Errorf("--bug-step-ms must be between 1 and 60000, got %d", *bugStepMs)
	}

	return bootConfig{
		columns:       columns,
		rows:          rows,
		wallThickness: uint32(*wallThickness),
		cellsPerTile:  uint32(*cellsPerTile),
		bugStepMs:     uint32(*bugStepMs),
		speciesConfig: *speciesConfigPath,
	}, nil
}

func parseSize(value string) (columns, rows uint32, err error) {
	x := strings.IndexAny(value, "xX")
	if x < 0 {
		return 0, 0, fmt.Errorf("--size must be of the form WxH, got %q", value)
	}
	w, err := strconv.ParseUint(strings.TrimSpace(value[:x]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("--size must be of the form WxH, got %q", value)
	}
	h, err := strconv.ParseUint(strings.TrimSpace(value[x+1:]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("--size must be of the form WxH, got %q", value)
	}
	return uint32(w), uint32(h), nil
}

// buildDriver assembles a Driver boot-configured per config, loading the
// species table and resolving its patches against the chosen grid.
func buildDriver(config bootConfig) (*driver.Driver, error) {
	table, err := waveconfig.Load(config.speciesConfig)
	if err != nil {
		return nil, err
	}

	grid := world.NewTileGrid(
		simcore.TileCoord(config.columns),
		simcore.TileCoord(config.rows),
		100.0,
		config.cellsPerTile,
		config.wallThickness,
	)
	table = table.WithResolvedSpawners(grid)
	species, patches := table.Views(1)

	d := driver.New(driver.Config{
		Spawning: spawning.Config{
			SpawnInterval: 1500 * time.Millisecond,
			Health:        1,
		},
		Species:        species,
		Patches:        patches,
		Pressure:       table.Pressure,
		GlobalSeed:     globalSeed,
		WaveDifficulty: simcore.DifficultyNormal,
	})

	d.Configure(simcore.ConfigureTileGrid(config.columns, config.rows, config.cellsPerTile, config.wallThickness))
	d.Configure(simcore.ConfigureBugStep(time.Duration(config.bugStepMs) * time.Millisecond))

	return d, nil
}

// Game adapts a driver.Driver to the ebiten.Game interface: it samples
// input once per tick, steps the simulation, and presents a read-only view
// of the resulting state.
type Game struct {
	driver *driver.Driver

	hoverCell  simcore.CellCoord
	hoverValid bool
	preview    *builder.PlacementPreview
}

// NewGame constructs a Game wrapping an already boot-configured driver.
func NewGame(d *driver.Driver) *Game {
	return &Game{driver: d}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := simcore.PlayModeBuilder
		if g.driver.Mode() == simcore.PlayModeBuilder {
			next = simcore.PlayModeAttack
		}
		g.driver.SetPlayMode(next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.driver.StartNextWave()
	}

	g.updateHover()
	g.updatePreview()

	input := builder.Input{
		ConfirmAction: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		RemoveAction:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		CursorCell:    g.hoverCell,
		HasCursor:     g.hoverValid,
	}

	g.driver.Step(time.Second/60, driver.Input{Preview: g.preview, Builder: input})
	return nil
}

func (g *Game) updateHover() {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 {
		g.hoverValid = false
		return
	}
	columns, rows := g.driver.Grid().TotalCellColumns(), g.driver.Grid().TotalCellRows()
	column, row := uint32(mx/CellSize), uint32(my/CellSize)
	if column >= columns || row >= rows {
		g.hoverValid = false
		return
	}
	g.hoverCell = simcore.NewCellCoord(column, row)
	g.hoverValid = true
}

func (g *Game) updatePreview() {
	if g.driver.Mode() != simcore.PlayModeBuilder || !g.hoverValid {
		g.preview = nil
		return
	}

	cellsPerTile := g.driver.Grid().CellsPerTile()
	origin := simcore.NewCellCoord(
		(g.hoverCell.Column/cellsPerTile)*cellsPerTile,
		(g.hoverCell.Row/cellsPerTile)*cellsPerTile,
	)
	kind := simcore.TowerBasic
	region := simcore.NewCellRect(origin, kind.Footprint())

	g.preview = &builder.PlacementPreview{
		Kind:      kind,
		Origin:    origin,
		Region:    region,
		Placeable: g.footprintIsFree(region),
	}
}

func (g *Game) footprintIsFree(region simcore.CellRect) bool {
	columns, rows := g.driver.Occupancy().Dimensions()
	if region.Origin.Column+region.Size.Width > columns || region.Origin.Row+region.Size.Height > rows {
		return false
	}
	occupancy := g.driver.Occupancy()
	for row := region.Origin.Row; row < region.Origin.Row+region.Size.Height; row++ {
		for column := region.Origin.Column; column < region.Origin.Column+region.Size.Width; column++ {
			if !occupancy.IsFree(simcore.NewCellCoord(column, row)) {
				return false
			}
		}
	}
	return true
}

func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.driver.Grid()
	columns, rows := grid.TotalCellColumns(), grid.TotalCellRows()

	for row := uint32(0); row < rows; row++ {
		for column := uint32(0); column < columns; column++ {
			px, py := float32(column*CellSize), float32(row*CellSize)
			vector.DrawFilledRect(screen, px, py, CellSize, CellSize, tileColor, false)
		}
	}

	for column := uint32(0); column <= columns; column++ {
		px := float32(column * CellSize)
		vector.StrokeLine(screen, px, 0, px, float32(rows*CellSize), 1, gridLineColor, false)
	}
	for row := uint32(0); row <= rows; row++ {
		py := float32(row * CellSize)
		vector.StrokeLine(screen, 0, py, float32(columns*CellSize), py, 1, gridLineColor, false)
	}

	for _, cell := range g.driver.SpawnerCells() {
		px, py := float32(cell.Column*CellSize), float32(cell.Row*CellSize)
		vector.DrawFilledRect(screen, px, py, CellSize, CellSize, spawnColor, false)
	}
	for _, cell := range g.driver.TargetOpening().Cells() {
		px, py := float32(cell.AsCell().Column*CellSize), float32(cell.AsCell().Row*CellSize)
		vector.DrawFilledRect(screen, px, py, CellSize, CellSize, targetColor, false)
	}

	for _, tower := range g.driver.Towers().Snapshots() {
		px := float32(tower.Region.Origin.Column * CellSize)
		py := float32(tower.Region.Origin.Row * CellSize)
		w := float32(tower.Region.Size.Width * CellSize)
		h := float32(tower.Region.Size.Height * CellSize)
		vector.DrawFilledRect(screen, px, py, w, h, wallColor, false)
	}

	if g.preview != nil {
		c := previewBlocked
		if g.preview.Placeable {
			c = previewOK
		}
		px := float32(g.preview.Region.Origin.Column * CellSize)
		py := float32(g.preview.Region.Origin.Row * CellSize)
		w := float32(g.preview.Region.Size.Width * CellSize)
		h := float32(g.preview.Region.Size.Height * CellSize)
		vector.DrawFilledRect(screen, px, py, w, h, c, false)
	}

	for _, snap := range g.driver.Bugs().Snapshots() {
		cx := float32(snap.Cell.Column*CellSize) + CellSize/2
		cy := float32(snap.Cell.Row*CellSize) + CellSize/2
		bugColor := color.RGBA{R: snap.Color.Red, G: snap.Color.Green, B: snap.Color.Blue, A: 255}
		vector.DrawFilledCircle(screen, cx, cy, CellSize/3, bugColor, true)
	}

	for _, target := range g.driver.Targets() {
		vector.StrokeLine(screen,
			target.TowerCenterCell.Column*CellSize, target.TowerCenterCell.Row*CellSize,
			target.BugCenterCell.Column*CellSize, target.BugCenterCell.Row*CellSize,
			2, laserColor, false)
	}

	report, haveReport := g.driver.LastStatsReport()
	mode := "attack"
	if g.driver.Mode() == simcore.PlayModeBuilder {
		mode = "builder"
	}
	status := fmt.Sprintf("mode: %s (tab) | wave %d (enter) | bugs: %d | towers: %d",
		mode, g.driver.CurrentWave(), len(g.driver.Bugs().Snapshots()), len(g.driver.Towers().Snapshots()))
	if haveReport {
		status += fmt.Sprintf(" | coverage %.1f%% | firing %.1f%% | path %d | dps %d",
			float64(report.CoverageBps)/100, float64(report.FiringBps)/100, report.PathLength, report.TotalDps)
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := g.driver.Grid()
	return int(grid.TotalCellColumns()) * CellSize, int(grid.TotalCellRows()) * CellSize
}

func main() {
	config, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	d, err := buildDriver(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	game := NewGame(d)
	width, height := game.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(d.WelcomeBanner())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
