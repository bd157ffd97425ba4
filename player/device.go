// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/smallnest/ringbuffer"

	"github.com/ik5/audchorus/utils"
)

// DeviceSink renders to the default output device through miniaudio.
//
// A feeder goroutine pulls float samples from the graph, applies the
// native volume, quantizes to S16 and writes into a ring buffer; the
// device data callback drains the ring. The callback therefore never
// touches the graph or any controller lock.
type DeviceSink struct {
	mtx      sync.Mutex
	ctx      *malgo.AllocatedContext
	dev      *malgo.Device
	rb       *ringbuffer.RingBuffer
	pull     func([]float32) int
	channels int
	started  bool
	feedStop chan struct{}

	volume atomic.Uint32 // float32 bits
}

// NewDeviceSink builds an unopened device sink at unity volume.
func NewDeviceSink() *DeviceSink {
	s := &DeviceSink{}
	s.volume.Store(math.Float32bits(1.0))

	return s
}

// Open initializes the platform context and the playback device for one
// stream. A closed sink may be opened again by a later load.
func (s *DeviceSink) Open(sampleRate, channels int, pull func(dst []float32) int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.dev != nil {
		return ErrSourceConnected
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init context: %w", err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(channels)
	cfg.SampleRate = uint32(sampleRate)
	cfg.Alsa.NoMMap = 1

	// Half a second of S16 frames between feeder and callback.
	rb := ringbuffer.New(sampleRate * channels)

	onData := func(out, _ []byte, _ uint32) {
		n, _ := rb.Read(out)
		for i := n; i < len(out); i++ {
			out[i] = 0 // underrun renders silence, never stale data
		}
	}

	dev, err := malgo.InitDevice(ctx.Context, cfg, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("init device: %w", err)
	}

	s.ctx = ctx
	s.dev = dev
	s.rb = rb
	s.pull = pull
	s.channels = channels

	return nil
}

// Start begins rendering and the feeder. Idempotent.
func (s *DeviceSink) Start() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.dev == nil {
		return ErrNotLoaded
	}
	if s.started {
		return nil
	}

	if err := s.dev.Start(); err != nil {
		return fmt.Errorf("start device: %w", err)
	}

	stop := make(chan struct{})
	s.feedStop = stop
	go s.feed(stop)
	s.started = true

	return nil
}

// Stop halts rendering. The ring is flushed so a seek while stopped does
// not replay stale samples on resume. Idempotent.
func (s *DeviceSink) Stop() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.dev == nil || !s.started {
		return nil
	}

	close(s.feedStop)
	s.feedStop = nil

	if err := s.dev.Stop(); err != nil {
		return fmt.Errorf("stop device: %w", err)
	}

	s.rb.Reset()
	s.started = false

	return nil
}

// SetVolume sets native attenuation, clamped to [0, 1].
func (s *DeviceSink) SetVolume(v float32) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.volume.Store(math.Float32bits(v))
}

// Close releases the device and the platform context. Stop first, device
// before context, so no callback runs against freed resources.
func (s *DeviceSink) Close() error {
	_ = s.Stop()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.dev == nil {
		return nil
	}

	s.dev.Uninit()
	s.dev = nil

	err := s.ctx.Uninit()
	s.ctx.Free()
	s.ctx = nil
	s.rb = nil
	s.pull = nil

	if err != nil {
		return fmt.Errorf("uninit context: %w", err)
	}
	return nil
}

// feed keeps the ring buffer topped up from the graph.
func (s *DeviceSink) feed(stop chan struct{}) {
	const chunkFrames = 1024

	fbuf := make([]float32, chunkFrames*s.channels)
	bbuf := make([]byte, len(fbuf)*2)
	rb := s.rb
	pull := s.pull

	for {
		select {
		case <-stop:
			return
		default:
		}

		if rb.Free() < len(bbuf) {
			time.Sleep(2 * time.Millisecond)
			continue
		}

		n := pull(fbuf)
		if n == 0 {
			// Nothing to play; the callback zero-fills on its own.
			time.Sleep(5 * time.Millisecond)
			continue
		}

		vol := math.Float32frombits(s.volume.Load())
		for i := 0; i < n; i++ {
			s16 := utils.Float32ToInt16(fbuf[i] * vol)
			binary.LittleEndian.PutUint16(bbuf[i*2:], uint16(s16))
		}

		if _, err := rb.Write(bbuf[:n*2]); err != nil {
			time.Sleep(2 * time.Millisecond)
		}
	}
}
