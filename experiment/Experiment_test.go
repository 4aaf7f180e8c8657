package experiment

import (
	"encoding/json"
	"testing"

	"gonum.org/v1/gonum/stat"
	"sfneuman.com/tabular/agent"
	"sfneuman.com/tabular/agent/esarsa"
	"sfneuman.com/tabular/agent/qlearning"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/experiment/tracker"
	"sfneuman.com/tabular/timestep"
)

const configJSON = `{
	"type": "OnlineExperiment",
	"maxSteps": 20000,
	"discount": 1,
	"episodeSteps": 100,
	"environment": {
		"rows": 4,
		"cols": 4,
		"goals": [{"row": 0, "col": 3}],
		"stepReward": -1,
		"goalReward": 0,
		"chargeCostOnTerminalEntry": false,
		"chargeWallBump": true
	},
	"agent": {
		"Type": "EGreedyQLearning-Tabular",
		"Config": {"epsilon": 0.1, "learningRate": 0.5}
	}
}`

func TestConfigJSON(t *testing.T) {
	var c Config
	if err := json.Unmarshal([]byte(configJSON), &c); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	qc, ok := c.AgentConf.Config.(qlearning.Config)
	if !ok {
		t.Fatalf("agent config has type %T, want qlearning.Config",
			c.AgentConf.Config)
	}
	if qc.Epsilon != 0.1 || qc.LearningRate != 0.5 {
		t.Errorf("agent config = %+v", qc)
	}

	// Marshaling a TypedConfig keeps its type
	typed := agent.NewTypedConfig(esarsa.Config{BehaviourE: 0.2,
		TargetE: 0.1, LearningRate: 0.3})
	data, err := json.Marshal(typed)
	if err != nil {
		t.Fatal(err)
	}
	var back agent.TypedConfig
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Type != agent.EGreedyESarsa || back.Config != typed.Config {
		t.Errorf("round trip gave %+v, want %+v", back, typed)
	}

	if err := json.Unmarshal([]byte(`{"Type": "nope"}`), &back); err == nil {
		t.Errorf("expected error for an unregistered type")
	}
}

func TestOnline(t *testing.T) {
	var c Config
	if err := json.Unmarshal([]byte(configJSON), &c); err != nil {
		t.Fatal(err)
	}

	returns, lengths := tracker.NewReturn(), tracker.NewEpisodeLength()
	exp, a, err := c.CreateExp(7, returns)
	if err != nil {
		t.Fatal(err)
	}
	exp.Register(lengths)
	if !c.AgentConf.ValidAgent(a) {
		t.Errorf("created agent %T is not valid for its config", a)
	}

	if err := exp.Run(); err != nil {
		t.Fatal(err)
	}
	if exp.Steps() != c.MaxSteps {
		t.Errorf("ran %d steps, want %d", exp.Steps(), c.MaxSteps)
	}

	r, l := returns.Data(), lengths.Data()
	if len(r) != len(l) || len(r) == 0 {
		t.Fatalf("tracked %d returns and %d lengths", len(r), len(l))
	}

	// Goal entry is free, every other step costs 1
	for i := range r {
		if l[i] < float64(c.EpisodeSteps) && r[i] != -(l[i]-1) {
			t.Errorf("episode %d: return %v, length %v", i, r[i], l[i])
		}
	}

	if late := stat.Mean(l[len(l)-50:], nil); late > 6 {
		t.Errorf("mean length of the last 50 episodes is %v", late)
	}
}

func TestReturnPanicsOnGap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on non-sequential timesteps")
		}
	}()
	r := tracker.NewReturn()
	r.Track(timestep.New(timestep.First, 0, 1, 0, 0))
	r.Track(timestep.New(timestep.Mid, 0, 1, 0, 2))
}

func TestConfigErrors(t *testing.T) {
	var c Config
	if err := json.Unmarshal([]byte(configJSON), &c); err != nil {
		t.Fatal(err)
	}

	bad := []func(*Config){
		func(c *Config) { c.Type = "Offline" },
		func(c *Config) { c.MaxSteps = 0 },
		func(c *Config) { c.Discount = 1.5 },
		func(c *Config) { c.EpisodeSteps = -1 },
		func(c *Config) { c.EnvConf.Rows = 0 },
		func(c *Config) { c.AgentConf = agent.TypedConfig{} },
		func(c *Config) {
			c.AgentConf = agent.NewTypedConfig(qlearning.Config{Epsilon: 2,
				LearningRate: 0.1})
		},
	}
	for i, modify := range bad {
		cfg := c
		modify(&cfg)
		if _, _, err := cfg.CreateExp(0); !check.IsConfig(err) {
			t.Errorf("case %d: expected ConfigError, got %v", i, err)
		}
	}
}
