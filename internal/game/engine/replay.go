package engine

import "fmt"

// Replay 从开局设置按顺序重放命令，得到同样的状态。任何一条失败都说明日志与设置不符。
func Replay(settings Settings, commands []Command) (State, error) {
	s, err := New(settings)
	if err != nil {
		return State{}, err
	}
	for i, cmd := range commands {
		if s, err = Apply(s, cmd); err != nil {
			return s, fmt.Errorf("replay #%d %s: %w", i, cmd.Name(), err)
		}
	}
	return s, nil
}

// ReplayEnvelopes 同 Replay，命令以外壳形式给出。
func ReplayEnvelopes(settings Settings, log []Envelope) (State, error) {
	commands := make([]Command, 0, len(log))
	for i, env := range log {
		cmd, err := DecodeCommand(env)
		if err != nil {
			return State{}, fmt.Errorf("decode #%d %s: %w", i, env.Name, err)
		}
		commands = append(commands, cmd)
	}
	return Replay(settings, commands)
}
