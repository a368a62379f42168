package vulkan

import "testing"

func TestCommandBufferSubmitRequiresEndedRecording(t *testing.T) {
	for _, state := range []VulkanCommandBufferState{
		COMMAND_BUFFER_STATE_READY,
		COMMAND_BUFFER_STATE_RECORDING,
		COMMAND_BUFFER_STATE_SUBMITTED,
		COMMAND_BUFFER_STATE_NOT_ALLOCATED,
	} {
		cb := &VulkanCommandBuffer{State: state}
		fence := &VulkanFence{IsSignaled: true}
		if err := cb.Submit(nil, fence); err == nil {
			t.Errorf("%s: have nil error", state)
		}
		if cb.State != state {
			t.Errorf("%s: state changed to %s", state, cb.State)
		}
		if !fence.IsSignaled {
			t.Errorf("%s: fence touched by a rejected submit", state)
		}
	}
}

func TestCommandBufferResetRequiresAllocation(t *testing.T) {
	cb := &VulkanCommandBuffer{State: COMMAND_BUFFER_STATE_NOT_ALLOCATED}
	if err := cb.Reset(&VulkanContext{}); err == nil {
		t.Error("have nil error")
	}
}

func TestFenceResetUnsignaledIsNoop(t *testing.T) {
	fence := &VulkanFence{}
	if err := fence.FenceReset(&VulkanContext{}); err != nil {
		t.Errorf("have %v, want nil", err)
	}
}

func TestHostAbandonKeepsFenceForShutdown(t *testing.T) {
	fence := &VulkanFence{}
	h := &Host{cmd: &VulkanCommandBuffer{State: COMMAND_BUFFER_STATE_SUBMITTED}, fence: fence}
	h.abandon()
	if h.cmd != nil || h.fence != nil {
		t.Errorf("have cmd=%v fence=%v, want both cleared", h.cmd, h.fence)
	}
	if len(h.abandoned) != 1 || h.abandoned[0] != fence {
		t.Errorf("abandoned: have %v, want [%p]", h.abandoned, fence)
	}
}
