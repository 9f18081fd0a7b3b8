// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

//go:build integration

package integration

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/command/handlers"
	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/core/coretest"
	"github.com/shadowtrack/shadowtrack/internal/observability"
	"github.com/shadowtrack/shadowtrack/internal/save"
	"github.com/shadowtrack/shadowtrack/internal/store"
)

var start = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

type sessionEnv struct {
	ctx        context.Context
	dir        string
	session    *core.Session
	archive    *store.Archive
	metrics    *observability.Metrics
	dispatcher *command.Dispatcher
	exec       *command.CommandExecution
	out        *bytes.Buffer
}

func newSessionEnv(rng core.RandomSource) *sessionEnv {
	env := &sessionEnv{
		ctx: context.Background(),
		dir: GinkgoT().TempDir(),
		out: new(bytes.Buffer),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	env.archive, err = store.Open(env.ctx, filepath.Join(env.dir, "archive.db"), store.WithLogger(logger))
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(env.archive.Close)

	env.metrics = observability.NewMetrics(prometheus.NewRegistry())
	env.session = core.NewSession(rng,
		core.WithLogger(logger),
		core.WithNow(func() time.Time { return start }),
		core.WithObservers(env.metrics),
	)
	env.session.AddObserver(env.archive.Recorder(env.session.ID()))

	reg := command.NewRegistry()
	handlers.RegisterAll(reg)
	env.dispatcher, err = command.NewDispatcher(reg, command.WithLogger(logger))
	Expect(err).NotTo(HaveOccurred())

	env.exec = &command.CommandExecution{
		Output: env.out,
		Services: &command.Services{
			Session:  env.session,
			Picker:   save.DirPicker{Dir: env.dir},
			Registry: reg,
		},
	}
	return env
}

func (env *sessionEnv) run(line string) {
	GinkgoHelper()
	Expect(env.dispatcher.Dispatch(env.ctx, line, env.exec)).To(Succeed())
}

// tick feeds the session a wall-clock check at start plus offset.
func (env *sessionEnv) tick(offset time.Duration) *core.TurnReport {
	return env.session.HandleClockTick(start.Add(offset))
}

var _ = Describe("Running a session", func() {
	var env *sessionEnv

	BeforeEach(func() {
		// Burn roll 3, encounter roll 1; every table pick takes the first entry.
		env = newSessionEnv(coretest.NewScriptedSource([]uint32{3, 1}, []int{0}))
	})

	It("fires a turn once the running clock crosses the interval", func() {
		env.run("light add torch Torch 30 60")
		env.session.StartClock()

		By("arming the trigger on the first running tick")
		Expect(env.tick(60 * time.Second)).To(BeNil())
		Expect(*env.session.State().NextTriggerMinutes).To(Equal(uint64(10)))

		By("firing when ten game minutes have passed")
		report := env.tick(660 * time.Second)
		Expect(report).NotTo(BeNil())
		Expect(report.Turn).To(Equal(uint32(1)))
		Expect(report.Encounter.Hit).To(BeTrue())
		Expect(report.Events).To(Equal([]string{
			core.DefaultAmbientEventTable()[0],
			core.EncounterPrefix + core.DefaultEncounterTable()[0],
		}))

		light := env.session.State().LightSources[0]
		Expect(light.MinutesRemaining).To(Equal(uint32(50)))
		Expect(*light.LastRoll).To(Equal(uint8(3)))

		By("archiving the turn")
		records, err := env.archive.History(env.ctx, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0].SessionID).To(Equal(env.session.ID()))
		Expect(records[0].Events).To(Equal(report.Events))

		By("counting it in the metrics")
		Expect(testutil.ToFloat64(env.metrics.TurnsTotal)).To(Equal(1.0))
		Expect(testutil.ToFloat64(env.metrics.ClockElapsedSeconds)).To(Equal(660.0))
	})

	It("does not advance a stopped clock", func() {
		Expect(env.tick(30 * time.Minute)).To(BeNil())
		Expect(env.session.State().ClockElapsed).To(BeZero())
		Expect(env.session.State().NextTriggerMinutes).To(BeNil())
	})

	It("fires a single turn when one check spans several intervals", func() {
		env.session.StartClock()
		env.tick(time.Second)

		report := env.tick(time.Hour)
		Expect(report).NotTo(BeNil())
		Expect(env.session.State().Turn).To(Equal(uint32(1)))

		records, err := env.archive.History(env.ctx, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
	})
})

var _ = Describe("Saving and loading", func() {
	var env *sessionEnv

	BeforeEach(func() {
		env = newSessionEnv(coretest.NewScriptedSource([]uint32{4}, []int{0}))
	})

	It("restores a saved game after a reset", func() {
		env.run("light add lantern Lamp 30 240")
		env.run("advance 5m")
		env.run("encounter roll")
		env.run("save")

		path := filepath.Join(env.dir, save.DefaultFileName)
		Expect(path).To(BeARegularFile())

		env.run("reset")
		Expect(env.session.State().LightSources).To(BeEmpty())
		Expect(env.session.State().ClockElapsed).To(BeZero())

		env.run("load")
		state := env.session.State()
		Expect(state.ClockElapsed).To(Equal(uint64(300)))
		Expect(state.LightSources).To(HaveLen(1))
		Expect(state.LightSources[0].Label).To(Equal("Lamp"))
		Expect(*state.EncounterRoll).To(Equal(uint8(4)))
		Expect(state.EventLog).To(HaveLen(1))
		Expect(state.EventLog[0].Events).To(Equal([]string{core.NoEncounterText}))
	})

	It("keeps the current game when the file is broken", func() {
		env.run("advance 90")
		broken := filepath.Join(env.dir, "broken.json")
		Expect(os.WriteFile(broken, []byte(`{"turn": "three"}`), 0o600)).To(Succeed())

		err := env.dispatcher.Dispatch(env.ctx, "load "+broken, env.exec)
		Expect(save.Is(err, save.KindSerialization)).To(BeTrue())
		Expect(env.session.State().ClockElapsed).To(Equal(uint64(90)))
	})

	It("exports and reimports the roll tables", func() {
		tables := filepath.Join(env.dir, "tables.yaml")
		env.run("encounter add Owlbear")
		env.run("tables export " + tables)

		env.run("reset")
		Expect(env.session.Entries(core.TableEncounters)).NotTo(ContainElement("Owlbear"))

		env.run("tables load " + tables)
		Expect(env.session.Entries(core.TableEncounters)).To(ContainElement("Owlbear"))
	})
})
