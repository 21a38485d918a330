package sound

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player 播放倒计时结束的提示音
type Player interface {
	Play()
}

// Nop 在关闭声音或加载失败时使用
type Nop struct{}

func (Nop) Play() {}

// 扬声器只能初始化一次
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Load 把 WAV 文件完整解码到内存
func Load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

type BeepPlayer struct {
	buffer *beep.Buffer
	volume float64
}

// NewPlayer 加载音效并初始化扬声器, volume 是以 2 为底的增益, 0 表示原始音量
func NewPlayer(path string, volume float64) (*BeepPlayer, error) {
	buffer, err := Load(path)
	if err != nil {
		return nil, err
	}

	speakerOnce.Do(func() {
		rate := buffer.Format().SampleRate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("init speaker: %w", speakerErr)
	}

	return &BeepPlayer{buffer: buffer, volume: volume}, nil
}

func (p *BeepPlayer) Play() {
	speaker.Play(p.streamer())
}

func (p *BeepPlayer) streamer() beep.Streamer {
	return &effects.Volume{
		Streamer: p.buffer.Streamer(0, p.buffer.Len()),
		Base:     2,
		Volume:   p.volume,
		Silent:   false,
	}
}
