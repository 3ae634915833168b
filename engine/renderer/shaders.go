package renderer

import (
	"github.com/Carmen-Shannon/oxy-physics/engine/camera"
	"github.com/Carmen-Shannon/oxy-physics/engine/light"
)

// Bind group indices shared by both pipelines.
const (
	frameGroup = 0
	meshGroup  = 1
)

// Bindings inside the lit pipeline's frame group.
const (
	bindingCamera = iota
	bindingLight
	bindingShadow
	bindingShadowMap
	bindingShadowSampler
)

// litShaderSource draws meshes with Lambert shading from the directional light
// and a 3x3 PCF lookup into the shadow map.
var litShaderSource = camera.GPUCameraUniformSource + light.GPULightSource + light.GPUShadowDataSource + GPUMeshUniformSource + `
@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(0) @binding(1) var<uniform> sun: Light;
@group(0) @binding(2) var<uniform> shadow: ShadowData;
@group(0) @binding(3) var shadow_map: texture_depth_2d;
@group(0) @binding(4) var shadow_sampler: sampler_comparison;
@group(1) @binding(0) var<uniform> mesh: MeshUniform;

struct VertexIn {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
};

struct VertexOut {
    @builtin(position) clip: vec4<f32>,
    @location(0) world_pos: vec3<f32>,
    @location(1) normal: vec3<f32>,
};

@vertex
fn vs_main(input: VertexIn) -> VertexOut {
    var out: VertexOut;
    let world = mesh.model * vec4<f32>(input.position, 1.0);
    out.clip = camera.view_proj * world;
    out.world_pos = world.xyz;
    out.normal = (mesh.normal * vec4<f32>(input.normal, 0.0)).xyz;
    return out;
}

fn visibility(world_pos: vec3<f32>) -> f32 {
    let p = shadow.light_vp * vec4<f32>(world_pos, 1.0);
    let ndc = p.xyz / p.w;
    let uv = vec2<f32>(ndc.x * 0.5 + 0.5, 0.5 - ndc.y * 0.5);
    let depth = ndc.z + shadow.bias;

    var sum = 0.0;
    for (var x = -1; x <= 1; x++) {
        for (var y = -1; y <= 1; y++) {
            let offset = vec2<f32>(f32(x), f32(y)) * shadow.texel_size;
            sum += textureSampleCompareLevel(shadow_map, shadow_sampler, uv + offset, depth);
        }
    }

    let inside = all(uv >= vec2<f32>(0.0)) && all(uv <= vec2<f32>(1.0)) && depth <= 1.0;
    return select(1.0, sum / 9.0, inside);
}

@fragment
fn fs_main(input: VertexOut) -> @location(0) vec4<f32> {
    let n = normalize(input.normal);
    let diffuse = max(dot(n, -sun.direction), 0.0);

    var lit = 1.0;
    if (shadow.enabled != 0u && mesh.receive_shadow != 0u) {
        lit = visibility(input.world_pos);
    }

    let radiance = sun.color * sun.intensity * diffuse * lit + vec3<f32>(sun.ambient);
    return vec4<f32>(mesh.color * radiance, 1.0);
}
`

// shadowShaderSource renders shadow casters into the light's depth map.
var shadowShaderSource = light.GPUShadowDataSource + GPUMeshUniformSource + `
@group(0) @binding(0) var<uniform> shadow: ShadowData;
@group(1) @binding(0) var<uniform> mesh: MeshUniform;

@vertex
fn vs_shadow(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return shadow.light_vp * mesh.model * vec4<f32>(position, 1.0);
}
`
